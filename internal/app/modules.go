package app

import (
	"github.com/trubrics/trubrics-cli/checks/expression"
	"github.com/trubrics/trubrics-cli/checks/threshold"
	"github.com/trubrics/trubrics-cli/internal/registry"
)

// coreChecks is the definitive list of all check modules that are compiled
// into the trubrics binary.
var coreChecks = []registry.Module{
	&expression.Module{},
	&threshold.Module{},
}
