package runfile

import "github.com/hashicorp/hcl/v2"

// ValidationArgs carries the raw body of a validation's 'arguments' block.
// Its content is opaque to the core; the executor decodes it against the
// arguments struct of the registered check handler.
type ValidationArgs struct {
	Body hcl.Body `hcl:",remain"`
}

// Validation is one `validation "<kind>" "<name>"` block from a run file.
// Declaration order in the file is the execution order.
type Validation struct {
	Kind      string          `hcl:"kind,label"`
	Name      string          `hcl:"name,label"`
	Severity  string          `hcl:"severity"`
	Arguments *ValidationArgs `hcl:"arguments,block"`
}

// runContextEntry is the decoded shape of the required run_context block.
type runContextEntry struct {
	Model   string `hcl:"model"`
	Dataset string `hcl:"dataset"`
}

// rawRunContext defers decoding of the run_context body so that a missing
// block and a block of the wrong shape produce distinct errors.
type rawRunContext struct {
	Body hcl.Body `hcl:",remain"`
}

// fileRoot is the top-level structure of a user's run file.
type fileRoot struct {
	RunContext  *rawRunContext `hcl:"run_context,block"`
	Validations []*Validation  `hcl:"validation,block"`
	Remain      hcl.Body       `hcl:",remain"`
}
