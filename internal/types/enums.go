package types

type ComponentKind string

const (
	ComponentKindLibrary ComponentKind = "library"
	ComponentKindService ComponentKind = "service"
)

type Mode string

const (
	ModeProd Mode = "prod"
	ModeDev  Mode = "dev"
)

type GroupStrategy string

const (
	StrategyExactlyOne GroupStrategy = "1-of-N"
	StrategyAnySubset  GroupStrategy = "M-of-N"
)

type SourceType string

const (
	SourceTypeNone    SourceType = ""
	SourceTypeLocal   SourceType = "local"
	SourceTypeGit     SourceType = "git"
	SourceTypePackage SourceType = "package"
	SourceTypeImage   SourceType = "image"
	SourceTypeBuild   SourceType = "build"
)

type ProfileMode string

const (
	ProfileModeManaged  ProfileMode = "managed"
	ProfileModeExternal ProfileMode = "external"
)
