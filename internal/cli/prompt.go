package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// prompter reads interactive answers for values omitted from the command
// line. A single buffered reader is shared across all prompts of one command
// invocation so no input between prompts is lost.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(cmd *cobra.Command) *prompter {
	return &prompter{
		in:  bufio.NewReader(cmd.InOrStdin()),
		out: cmd.OutOrStdout(),
	}
}

// ask prompts for one value. An empty answer falls back to def; when def is
// empty too, the value is required and an empty answer is an error.
func (p *prompter) ask(label, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", label, def)
	} else {
		fmt.Fprintf(p.out, "%s: ", label)
	}

	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read answer for '%s': %w", label, err)
	}
	answer := strings.TrimSpace(line)
	if answer == "" {
		if def == "" {
			return "", fmt.Errorf("a value for '%s' is required", label)
		}
		return def, nil
	}
	return answer, nil
}
