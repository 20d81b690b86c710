package adapters

import (
	"os"
	"sort"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"hyperstack/internal/types"
)

// GenerateConfig writes docker-compose.hsm.yml.  The file is built from
// yaml nodes so services appear in plan order and env keys in sorted
// order: two runs over the same plan produce byte-identical output.
func (a DockerComposeAdapter) GenerateConfig(services []types.ServiceSpec) error {
	servicesNode := mappingNode()
	for _, spec := range services {
		appendMapEntry(servicesNode, spec.Name, serviceNode(spec))
	}
	root := mappingNode()
	appendMapEntry(root, "services", servicesNode)

	data, err := yaml.Marshal(root)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to serialize compose config").
			WithCause(err)
	}
	if err := os.WriteFile(a.composePath(), data, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write compose config").
			WithCause(err)
	}
	return nil
}

func serviceNode(spec types.ServiceSpec) *yaml.Node {
	node := mappingNode()
	appendMapEntry(node, "container_name", scalarNode(spec.ContainerName))
	if spec.Image != "" {
		appendMapEntry(node, "image", scalarNode(spec.Image))
	}
	if spec.Build != nil {
		build := mappingNode()
		appendMapEntry(build, "context", scalarNode(spec.Build.Context))
		if spec.Build.Dockerfile != "" {
			appendMapEntry(build, "dockerfile", scalarNode(spec.Build.Dockerfile))
		}
		appendMapEntry(node, "build", build)
	}
	if len(spec.Ports) > 0 {
		appendMapEntry(node, "ports", sequenceNode(spec.Ports))
	}
	if len(spec.Volumes) > 0 {
		appendMapEntry(node, "volumes", sequenceNode(spec.Volumes))
	}
	if len(spec.Env) > 0 {
		env := mappingNode()
		keys := make([]string, 0, len(spec.Env))
		for key := range spec.Env {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			appendMapEntry(env, key, scalarNode(spec.Env[key]))
		}
		appendMapEntry(node, "environment", env)
	}
	if len(spec.NetworkAliases) > 0 {
		aliases := mappingNode()
		appendMapEntry(aliases, "aliases", sequenceNode(spec.NetworkAliases))
		networks := mappingNode()
		appendMapEntry(networks, "default", aliases)
		appendMapEntry(node, "networks", networks)
	}
	return node
}

func mappingNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

func scalarNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

func sequenceNode(values []string) *yaml.Node {
	node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, value := range values {
		node.Content = append(node.Content, scalarNode(value))
	}
	return node
}

func appendMapEntry(node *yaml.Node, key string, value *yaml.Node) {
	node.Content = append(node.Content, scalarNode(key), value)
}
