package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mind-engage/campusmate/internal/intent"
	"github.com/mind-engage/campusmate/internal/randsrc"
	"github.com/mind-engage/campusmate/internal/records"
)

func newChatCmd(o *options) *cobra.Command {
	var offline bool
	cmd := &cobra.Command{
		Use:   "chat <message...>",
		Short: "Answer one chat message like the chatbot service",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := records.NewStore(nil)
			if !offline {
				s, closeFn, err := o.loadStore(cmd.Context())
				if err != nil {
					return err
				}
				defer closeFn()
				store = s
			}
			reply := intent.NewResponder(store, randsrc.Global()).Respond(strings.Join(args, " "))
			if o.format == "json" {
				return writeJSON(cmd.OutOrStdout(), reply)
			}
			fmt.Fprintln(cmd.OutOrStdout(), color.CyanString("[%s %.2f]", reply.Intent, reply.Confidence))
			fmt.Fprintln(cmd.OutOrStdout(), reply.Response)
			return nil
		},
	}
	cmd.Flags().BoolVar(&offline, "offline", false, "answer without loading cutoff data")
	return cmd
}
