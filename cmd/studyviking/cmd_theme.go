package main

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/sandeepkv93/studyviking/internal/model"
	"github.com/spf13/cobra"
)

var themeCmd = &cobra.Command{
	Use:       "theme [dark|light]",
	Short:     "Set the color theme",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{string(model.ThemeDark), string(model.ThemeLight)},
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup()
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := context.Background()
		var choice string
		if len(args) == 1 {
			choice = args[0]
		} else {
			choice = string(a.store.LoadThemePreference(ctx))
			err := huh.NewForm(
				huh.NewGroup(
					huh.NewSelect[string]().
						Title("Which theme would you like?").
						Options(
							huh.NewOption("Dark", string(model.ThemeDark)),
							huh.NewOption("Light", string(model.ThemeLight)),
						).
						Value(&choice),
				),
			).Run()
			if err != nil {
				return err
			}
		}

		theme := model.Theme(choice)
		if !theme.IsValid() {
			return fmt.Errorf("unknown theme %q, expected dark or light", choice)
		}
		if err := a.store.SaveThemePreference(ctx, theme); err != nil {
			return err
		}
		fmt.Printf("Theme set to %s.\n", theme)
		return nil
	},
}
