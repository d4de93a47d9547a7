package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/five82/forkify/internal/config"
	"github.com/five82/forkify/internal/event"
	"github.com/five82/forkify/internal/recipe"
)

var uploadCmd = &cobra.Command{
	Use:   "upload [recipe.yaml]",
	Short: "Upload a recipe from a YAML file",
	Long: `Uploads a user recipe. The recipe is bookmarked once the API stores it.
Needs api_key in config.toml or ` + config.APIKeyEnv + `.

Example file:
  title: Weeknight curry
  source_url: https://example.com/curry
  image_url: https://example.com/curry.jpg
  publisher: Me
  cooking_time: 35
  servings: 3
  ingredients:
    - 1,kg,chicken
    - 2,tbsp,curry paste
    - ,,salt`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	upload, err := readUpload(args[0])
	if err != nil {
		return err
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	if !a.Config.CanUpload() {
		return fmt.Errorf("uploading needs an api_key in config.toml or %s", config.APIKeyEnv)
	}
	if err := a.Dispatcher.Dispatch(commandContext(cmd), event.RecipeUploaded{Upload: upload}); err != nil {
		return err
	}

	created, ok := a.State.Recipe()
	if !ok {
		return fmt.Errorf("upload finished without a recipe")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Uploaded %q as %s and bookmarked it\n", created.Title, created.ID)
	return nil
}

func readUpload(path string) (recipe.Upload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return recipe.Upload{}, fmt.Errorf("read recipe file: %w", err)
	}
	var upload recipe.Upload
	if err := yaml.Unmarshal(data, &upload); err != nil {
		return recipe.Upload{}, fmt.Errorf("parse recipe file: %w", err)
	}
	return upload, nil
}
