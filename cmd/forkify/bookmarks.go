package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"

	"github.com/five82/forkify/internal/event"
	"github.com/five82/forkify/internal/forkify"
	"github.com/five82/forkify/internal/recipe"
)

const (
	noBookmarksMessage = "No bookmarks yet. Find a nice recipe and bookmark it ;)"
	exportWorkers      = 4
	exportSheet        = "Bookmarks"
)

var exportOut string

var bookmarksCmd = &cobra.Command{
	Use:   "bookmarks",
	Short: "List, add, remove and export bookmarks",
}

var bookmarksListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the bookmarked recipes",
	Args:  cobra.NoArgs,
	RunE:  runBookmarksList,
}

var bookmarksAddCmd = &cobra.Command{
	Use:   "add [id]",
	Short: "Bookmark a recipe by id",
	Args:  cobra.ExactArgs(1),
	RunE:  runBookmarksAdd,
}

var bookmarksRemoveCmd = &cobra.Command{
	Use:   "remove [id]",
	Short: "Remove a bookmark",
	Args:  cobra.ExactArgs(1),
	RunE:  runBookmarksRemove,
}

var bookmarksClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every bookmark",
	Args:  cobra.NoArgs,
	RunE:  runBookmarksClear,
}

var bookmarksExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export bookmarked recipes with their ingredients",
	Long: `Fetches every bookmarked recipe and writes one row per recipe.
The format follows the --out extension: .csv or .xlsx.

Example:
  forkify bookmarks export --out bookmarks.xlsx`,
	Args: cobra.NoArgs,
	RunE: runBookmarksExport,
}

func init() {
	bookmarksExportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (.csv or .xlsx)")
	_ = bookmarksExportCmd.MarkFlagRequired("out")

	bookmarksCmd.AddCommand(bookmarksListCmd, bookmarksAddCmd, bookmarksRemoveCmd, bookmarksClearCmd, bookmarksExportCmd)
	rootCmd.AddCommand(bookmarksCmd)
}

func runBookmarksList(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	out := cmd.OutOrStdout()
	bookmarks := a.State.Bookmarks()
	if len(bookmarks) == 0 {
		fmt.Fprintln(out, noBookmarksMessage)
		return nil
	}
	fmt.Fprintln(out, summaryTable(bookmarks, 1, nil))
	return nil
}

func runBookmarksAdd(cmd *cobra.Command, args []string) error {
	id := strings.TrimSpace(args[0])
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	out := cmd.OutOrStdout()
	if a.State.IsBookmarked(id) {
		fmt.Fprintf(out, "%s is already bookmarked\n", id)
		return nil
	}

	ctx := commandContext(cmd)
	if err := a.Dispatcher.Dispatch(ctx, event.RecipeRequested{ID: id}); err != nil {
		return err
	}
	if err := a.Dispatcher.Dispatch(ctx, event.BookmarkToggled{}); err != nil {
		return err
	}
	r, _ := a.State.Recipe()
	fmt.Fprintf(out, "Bookmarked %q (%s)\n", r.Title, r.ID)
	return nil
}

func runBookmarksRemove(cmd *cobra.Command, args []string) error {
	id := strings.TrimSpace(args[0])
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	if !a.State.IsBookmarked(id) {
		return fmt.Errorf("%s is not bookmarked", id)
	}
	if err := a.State.DeleteBookmark(commandContext(cmd), id); err != nil {
		return fmt.Errorf("remove bookmark: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed bookmark %s\n", id)
	return nil
}

func runBookmarksClear(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	n := len(a.State.Bookmarks())
	if err := a.Bookmarks.ClearBookmarks(commandContext(cmd)); err != nil {
		return fmt.Errorf("clear bookmarks: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %d bookmarks\n", n)
	return nil
}

func runBookmarksExport(cmd *cobra.Command, args []string) error {
	write, err := exportWriter(exportOut)
	if err != nil {
		return err
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	recipes, err := fetchRecipes(commandContext(cmd), a.Source, a.State.Bookmarks())
	if err != nil {
		return err
	}
	if err := write(exportOut, recipes); err != nil {
		return fmt.Errorf("write %s: %w", exportOut, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d recipes to %s\n", len(recipes), exportOut)
	return nil
}

// fetchRecipes loads the full recipe behind every bookmark, keeping the
// bookmark order. The first failure cancels the rest.
func fetchRecipes(ctx context.Context, source forkify.RecipeSource, bookmarks []recipe.Summary) ([]recipe.Recipe, error) {
	recipes := make([]recipe.Recipe, len(bookmarks))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(exportWorkers)
	for i, b := range bookmarks {
		g.Go(func() error {
			dto, err := source.Recipe(ctx, b.ID)
			if err != nil {
				return fmt.Errorf("load recipe %s: %w", b.ID, err)
			}
			r := recipe.FromDTO(dto)
			if r.ID == "" {
				r.ID = b.ID
			}
			r.Bookmarked = true
			recipes[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return recipes, nil
}

type exportFunc func(path string, recipes []recipe.Recipe) error

func exportWriter(path string) (exportFunc, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return writeCSV, nil
	case ".xlsx":
		return writeXLSX, nil
	default:
		return nil, fmt.Errorf("unsupported export format %q: use .csv or .xlsx", filepath.Ext(path))
	}
}

var exportHeader = []string{"id", "title", "publisher", "servings", "cooking_time", "source_url", "user_recipe", "ingredients"}

func exportRow(r recipe.Recipe) []string {
	ings := make([]string, len(r.Ingredients))
	for i, ing := range r.Ingredients {
		ings[i] = ing.String()
	}
	return []string{
		r.ID,
		r.Title,
		r.Publisher,
		strconv.Itoa(r.Servings),
		strconv.Itoa(r.CookingTime),
		r.SourceURL,
		strconv.FormatBool(r.IsUserRecipe()),
		strings.Join(ings, "; "),
	}
}

func writeCSV(path string, recipes []recipe.Recipe) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(exportHeader); err != nil {
		return err
	}
	for _, r := range recipes {
		if err := w.Write(exportRow(r)); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

func writeXLSX(path string, recipes []recipe.Recipe) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return err
	}
	sw, err := f.NewStreamWriter(exportSheet)
	if err != nil {
		return err
	}
	if err := sw.SetRow("A1", toCells(exportHeader)); err != nil {
		return err
	}
	for i, r := range recipes {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, toCells(exportRow(r))); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}
	return f.SaveAs(path)
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
