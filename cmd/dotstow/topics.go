package dotstow

import (
	"embed"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

//go:embed docs/*.md
var topicDocs embed.FS

func newTopicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "topics [topic]",
		Short: MsgTopicsShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				names, err := topicNames()
				if err != nil {
					return err
				}
				fmt.Println("Available topics:")
				for _, name := range names {
					fmt.Printf("  %s\n", name)
				}
				return nil
			}

			content, err := topicDocs.ReadFile("docs/" + args[0] + ".md")
			if err != nil {
				return fmt.Errorf("unknown topic %q", args[0])
			}

			renderer, err := glamour.NewTermRenderer(
				glamour.WithAutoStyle(),
				glamour.WithWordWrap(100),
			)
			if err != nil {
				// Fall back to raw markdown.
				fmt.Println(string(content))
				return nil
			}
			rendered, err := renderer.Render(string(content))
			if err != nil {
				fmt.Println(string(content))
				return nil
			}
			fmt.Print(rendered)
			return nil
		},
	}
}

func topicNames() ([]string, error) {
	entries, err := topicDocs.ReadDir("docs")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, entry := range entries {
		names = append(names, strings.TrimSuffix(entry.Name(), ".md"))
	}
	sort.Strings(names)
	return names, nil
}
