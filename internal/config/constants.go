package config

// Version is the closurecheck release, compared against Config.Requires.
const Version = "0.4.2"

// ToolName is used as the diagnostic source and in CLI banners.
const ToolName = "closurecheck"

// ScenarioFileExtensions are all recognized scenario file extensions
var ScenarioFileExtensions = []string{".yaml", ".yml", ".toml"}

// Default names of the callable interface family and its associated output item.
const (
	FnTraitName     = "Fn"
	FnMutTraitName  = "FnMut"
	FnOnceTraitName = "FnOnce"
	OutputItemName  = "Output"
)

// Default lang item ids for the callable family. Scenario files and tests
// refer to interfaces by name; ids only need to be distinct.
const (
	FnTraitID     = 1
	FnMutTraitID  = 2
	FnOnceTraitID = 3
)

// Default config file names, searched in this order next to a scenario.
var ConfigFileNames = []string{"closurecheck.yaml", "closurecheck.yml", "closurecheck.toml"}
