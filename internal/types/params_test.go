package types

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestParamBagKeepsFirstSeenOrder(t *testing.T) {
	bag := NewParamBag()
	bag.Add("topics", "imu")
	bag.Add("endpoints", "tcp/7447")
	bag.Add("topics", "odom")

	assert.Equal(t, []string{"topics", "endpoints"}, bag.Keys())
	assert.Equal(t, []string{"imu", "odom"}, bag.Values("topics"))
}

func TestParamBagDeduplicatesValues(t *testing.T) {
	bag := NewParamBag()
	assert.True(t, bag.Add("topics", "imu"))
	assert.False(t, bag.Add("topics", "imu"))
	assert.Equal(t, []string{"imu"}, bag.Values("topics"))
}

func TestParamBagAddReportsGrowth(t *testing.T) {
	bag := NewParamBag()
	assert.True(t, bag.Add("topics", "imu"))
	assert.True(t, bag.Add("topics", "odom"))
	assert.False(t, bag.Add("topics", "imu", "odom"))
	// A known key with no new values is still a change when the key
	// itself is new.
	assert.True(t, bag.Add("empty"))
	assert.False(t, bag.Add("empty"))
}

func TestParamBagMerge(t *testing.T) {
	bag := NewParamBag()
	changed := bag.Merge(map[string]StringList{
		"topics":    {"imu"},
		"endpoints": {"tcp/7447"},
	})
	assert.True(t, changed)

	changed = bag.Merge(map[string]StringList{"topics": {"imu"}})
	assert.False(t, changed)

	changed = bag.Merge(map[string]StringList{"topics": {"odom"}})
	assert.True(t, changed)

	if diff := cmp.Diff([]string{"imu", "odom"}, bag.Values("topics")); diff != "" {
		t.Fatalf("unexpected values (-want +got):\n%s", diff)
	}
}

func TestParamBagValuesCopies(t *testing.T) {
	bag := NewParamBag()
	bag.Add("topics", "imu")
	values := bag.Values("topics")
	values[0] = "mutated"
	assert.Equal(t, []string{"imu"}, bag.Values("topics"))
}
