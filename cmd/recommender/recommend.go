package main

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"task_recommender/internal/frame"
	"task_recommender/internal/model"
	"task_recommender/internal/store"
)

var (
	flagTopN     int
	flagNewQuery bool
)

var recommendCmd = &cobra.Command{
	Use:   "recommend <title>",
	Short: "Print the top-N tasks most similar to a title",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := resolveConfig()

		taskStore, err := store.Open(cfg.Paths.DB)
		if err != nil {
			return fmt.Errorf("open task store: %w", err)
		}
		defer taskStore.Close()

		tasks, err := taskStore.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("list tasks: %w", err)
		}

		result, err := frame.Prepare(tasks, args[0], flagTopN, flagNewQuery)
		if err != nil {
			return err
		}

		fmt.Println(renderRecommendations(result))
		return nil
	},
}

func init() {
	recommendCmd.Flags().IntVar(&flagTopN, "top", 5, "Number of similar tasks to return (1 < n < 20)")
	recommendCmd.Flags().BoolVar(&flagNewQuery, "new", false, "Treat the title as new free text not present in the table")
}

func renderRecommendations(recs []model.Recommendation) string {
	tw := table.NewWriter()
	if isTerminal(os.Stdout) {
		tw.SetStyle(table.StyleRounded)
	} else {
		tw.SetStyle(table.StyleDefault)
	}

	tw.AppendHeader(table.Row{"ID", "Title", "Deadline", "Score"})
	for _, r := range recs {
		tw.AppendRow(table.Row{r.ID, r.Title, r.Deadline, fmt.Sprintf("%.4f", r.Score)})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})

	return tw.Render()
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
