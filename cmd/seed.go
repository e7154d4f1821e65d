package cmd

import (
	"context"
	"errors"
	"fmt"

	"art-progression/config"
	"art-progression/database"
	"art-progression/internal/infra/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var seedAppend bool

// seedCmd copies the fallback document into the database so the records
// become editable.
var seedCmd = &cobra.Command{
	Use:   "seed [document]",
	Short: "Import a static artworks document into the database",
	Long: `Reads an artworks document ({"artworks": [...]}) and creates one record
per entry. Defaults to FALLBACK_DOCUMENT. Refuses to run against a database
that already holds artworks unless --append is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.FALLBACK_DOCUMENT
		if len(args) == 1 {
			path = args[0]
		}

		database.InitDB()
		if database.DB == nil {
			return errors.New("no database available, set DB_URL")
		}
		s := store.NewGormStore(database.DB, path)
		n, err := seed(cmd.Context(), s, path, seedAppend)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "imported %d artworks from %s\n", n, path)
		return nil
	},
}

func init() {
	seedCmd.Flags().BoolVar(&seedAppend, "append", false, "import even if the database already has artworks")
}

func seed(ctx context.Context, s store.Store, path string, appendTo bool) (int, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	current, err := s.FetchAll(ctx)
	if err != nil {
		return 0, err
	}
	if current.Source == store.SourceStore && !appendTo {
		return 0, fmt.Errorf("database already holds %d artworks, use --append", len(current.Artworks))
	}

	records, err := store.ReadFallback(path)
	if err != nil {
		return 0, err
	}

	created := 0
	for i := range records {
		if _, err := s.Create(ctx, &records[i]); err != nil {
			return created, fmt.Errorf("record %d (%s): %w", i, records[i].Date, err)
		}
		created++
	}
	zap.L().Info("seeded artworks", zap.String("path", path), zap.Int("count", created))
	return created, nil
}
