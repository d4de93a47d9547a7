package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/five82/forkify/internal/event"
	"github.com/five82/forkify/internal/recipe"
)

const noResultsMessage = "No recipes found for your query! Please try again ;)"

var searchPage int

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search recipes and print one page of results",
	Long: `Searches the Forkify API for a dish or an ingredient.

Example:
  forkify search pizza
  forkify search avocado --page 2`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchPage, "page", "p", 1, "results page to print (1-based)")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		return fmt.Errorf("search query is empty")
	}
	if searchPage < 1 {
		return fmt.Errorf("page must be 1 or greater, got %d", searchPage)
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	ctx := commandContext(cmd)
	if err := a.Dispatcher.Dispatch(ctx, event.SearchSubmitted{Query: query}); err != nil {
		return err
	}
	if err := a.Dispatcher.Dispatch(ctx, event.PageRequested{Page: searchPage - 1}); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	search := a.State.Search()
	if len(search.Results) == 0 {
		fmt.Fprintln(out, noResultsMessage)
		return nil
	}

	page := a.State.CurrentPage()
	first := search.Page*search.PerPage + 1
	fmt.Fprintln(out, summaryTable(page, first, a.State.IsBookmarked))
	fmt.Fprintf(out, "Page %d of %d (%d results)\n", search.Page+1, search.PageCount(), len(search.Results))
	return nil
}

// summaryTable renders summaries numbered from first. User recipes are
// marked ◆ and bookmarked ones ★.
func summaryTable(items []recipe.Summary, first int, bookmarked func(id string) bool) string {
	rows := make([][]string, 0, len(items))
	for i, s := range items {
		marks := ""
		if s.IsUserRecipe() {
			marks += "◆"
		}
		if bookmarked != nil && bookmarked(s.ID) {
			marks += "★"
		}
		rows = append(rows, []string{strconv.Itoa(first + i), marks, s.ID, s.Title, s.Publisher})
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("#", "", "ID", "TITLE", "PUBLISHER").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Render()
}
