package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/five82/forkify/internal/event"
	"github.com/five82/forkify/internal/recipe"
)

var (
	showServings int
	showStyle    string
	showWidth    int
)

var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Print a recipe, optionally scaled to a number of servings",
	Long: `Loads a recipe and renders it as Markdown.

Styles are the glamour standard styles (dark, light, notty, ...), "auto" to
follow the terminal, or "raw" for the Markdown source.

Example:
  forkify show 5ed6604591c37cdc054bc886 --servings 8`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().IntVarP(&showServings, "servings", "s", 0, "scale the ingredients to this many servings")
	showCmd.Flags().StringVar(&showStyle, "style", "auto", "markdown style, or raw")
	showCmd.Flags().IntVar(&showWidth, "width", 80, "word wrap width")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	id := strings.TrimSpace(args[0])
	if id == "" {
		return fmt.Errorf("recipe id required")
	}
	if showServings < 0 {
		return fmt.Errorf("servings must be positive, got %d", showServings)
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	ctx := commandContext(cmd)
	if err := a.Dispatcher.Dispatch(ctx, event.RecipeRequested{ID: id}); err != nil {
		return err
	}
	if showServings > 0 {
		if err := a.Dispatcher.Dispatch(ctx, event.ServingsChanged{Servings: showServings}); err != nil {
			return err
		}
	}

	r, ok := a.State.Recipe()
	if !ok {
		return fmt.Errorf("recipe %s not loaded", id)
	}
	out, err := renderMarkdown(recipeMarkdown(r), showStyle, showWidth)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

func recipeMarkdown(r recipe.Recipe) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", r.Title)

	facts := []string{
		fmt.Sprintf("**%d** minutes", r.CookingTime),
		fmt.Sprintf("**%d** servings", r.Servings),
	}
	if r.IsUserRecipe() {
		facts = append(facts, "your recipe")
	}
	if r.Bookmarked {
		facts = append(facts, "bookmarked")
	}
	b.WriteString(strings.Join(facts, " · "))
	b.WriteString("\n\n")

	b.WriteString("## Recipe ingredients\n\n")
	for _, ing := range r.Ingredients {
		fmt.Fprintf(&b, "- %s\n", ing)
	}

	b.WriteString("\n## How to cook it\n\n")
	fmt.Fprintf(&b, "This recipe was carefully designed and tested by **%s**. "+
		"Please check out directions at their website.\n", r.Publisher)
	if r.SourceURL != "" {
		fmt.Fprintf(&b, "\n<%s>\n", r.SourceURL)
	}
	return b.String()
}

func renderMarkdown(md, style string, width int) (string, error) {
	if style == "raw" {
		return md, nil
	}
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" || style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	renderer, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}
	out, err := renderer.Render(md)
	if err != nil {
		return "", fmt.Errorf("render recipe: %w", err)
	}
	return out, nil
}
