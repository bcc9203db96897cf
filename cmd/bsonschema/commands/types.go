/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: types.go
Description: Lists the type vocabulary of the classifier in evaluation order.
*/

package commands

import (
	"fmt"

	"github.com/kleascm/bsonschema/pkg/inference"
	"github.com/spf13/cobra"
)

// ListTypes prints every type tag with the values that map to it
func ListTypes(cmd *cobra.Command, args []string) {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "🧬 bsonschema - Type Vocabulary")
	fmt.Fprintln(out, "===============================")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "   %s, %s: nil, primitive.Null\n", inference.TagNull, inference.TagUndefined)
	fmt.Fprintln(out, "   (undefined is emitted as null)")
	fmt.Fprintln(out)

	for i, rule := range inference.Rules() {
		fmt.Fprintf(out, "%2d. %s\n", i+1, rule.Tag)
		fmt.Fprintf(out, "    Values: %s\n", rule.Description)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "✨ Rules are checked in order; the first match wins.")
}
