package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Mukulworld25/sagedo-website/internal/raster"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List supported image formats",
	Long: `List the image formats logomask can read and write.

Any listed format can be used as input. Output is limited to formats that
store the alpha channel losslessly.`,
	Run: runFormats,
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}

func runFormats(cmd *cobra.Command, args []string) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "FORMAT\tEXTENSIONS\tREAD\tWRITE")
	fmt.Fprintln(w, "------\t----------\t----\t-----")

	for _, c := range raster.Codecs() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			c.Name(), strings.Join(c.Extensions, ", "), "✓", checkMark(c.CanEncode()))
	}
}

func checkMark(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}
