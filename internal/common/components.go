package common

const (
	ComponentRobotProvider = "robot-provider"
	ComponentSetupProvider = "setup-provider"
	ComponentValidation    = "validation"
	ComponentCLI           = "cli"
)

var AllComponents = map[string]struct{}{
	ComponentRobotProvider: {},
	ComponentSetupProvider: {},
	ComponentValidation:    {},
	ComponentCLI:           {},
}
