package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/throwables/internal/journal"
	mdwerrors "github.com/msto63/throwables/pkg/core/errors"
	"github.com/msto63/throwables/pkg/scarpet"
	"github.com/msto63/throwables/pkg/taxonomy"
)

var declareJournal bool

var declareCmd = &cobra.Command{
	Use:   "declare <id> [parent]",
	Short: "Declare a custom exception type",
	Long: `Declares id below parent, or below the configured root branch.

Without --journal the declaration only lives for this invocation, which
is still useful to validate a name. --journal requires taxonomy.journal_path,
the journal every later invocation replays.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		parent := current.cfg.Taxonomy.RootBranch
		if len(args) == 2 {
			parent = args[1]
		}

		var (
			et  *taxonomy.ExceptionType
			err error
		)
		if declareJournal {
			j, jerr := current.openJournal()
			if jerr != nil {
				return jerr
			}
			et, err = j.Record(context.Background(), current.reg, args[0], parent, "cli")
		} else {
			et, err = scarpet.Declare(current.reg, args[0], parent)
		}
		if err != nil {
			return err
		}

		chain := et.ID()
		for _, a := range et.Ancestors() {
			chain += " < " + a.ID()
		}
		fmt.Fprintln(cmd.OutOrStdout(), chain)
		return nil
	},
}

// openJournal returns the journal replayed at startup. Without a
// configured journal_path there is none: writing to a journal no later
// run reads back would leave registry and journal disagreeing.
func (a *app) openJournal() (*journal.SQLiteJournal, error) {
	if a.journal == nil {
		return nil, mdwerrors.New("--journal needs taxonomy.journal_path in the config").
			WithCode(mdwerrors.CodeConfigError)
	}
	return a.journal, nil
}

func init() {
	declareCmd.Flags().BoolVar(&declareJournal, "journal", false, "persist the declaration in the journal")
	rootCmd.AddCommand(declareCmd)
}
