package main

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"
	"time"

	"cinesearch/movie"
	"cinesearch/pkg/logger"
	"cinesearch/tmdb"

	"github.com/pkg/errors"
	"github.com/urfave/cli"
	"go.uber.org/zap"
)

const (
	keyFlag      = "tmdb-api-key"
	baseURLFlag  = "tmdb-base-url"
	languageFlag = "tmdb-language"
	timeoutFlag  = "tmdb-timeout"
	verboseFlag  = "verbose"
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

func newApp(out io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "moviefetch"
	app.Usage = "Query the movie catalog from the command line and print the results as JSON"
	app.Writer = out
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   keyFlag,
			Usage:  "tmdb api key",
			EnvVar: "TMDB_API_KEY",
		},
		cli.StringFlag{
			Name:   baseURLFlag,
			Usage:  "tmdb api base url",
			EnvVar: "TMDB_BASE_URL",
			Value:  tmdb.DefaultBaseURL,
		},
		cli.StringFlag{
			Name:   languageFlag,
			Usage:  "tmdb response language, e.g. en-US",
			EnvVar: "TMDB_LANGUAGE",
		},
		cli.DurationFlag{
			Name:   timeoutFlag,
			Usage:  "tmdb request timeout",
			EnvVar: "TMDB_TIMEOUT",
			Value:  tmdb.DefaultTimeout,
		},
		cli.BoolFlag{
			Name:  verboseFlag,
			Usage: "log catalog failures to stderr",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "search",
			Aliases:   []string{"s"},
			Usage:     "Search movies by title",
			ArgsUsage: "<title>",
			Action: func(c *cli.Context) error {
				query := strings.Join(c.Args(), " ")
				return printMovies(c, func(ctx context.Context, svc movie.Service) []movie.Summary {
					return svc.SearchByTitle(ctx, query)
				})
			},
		},
		listCommand(movie.CategoryPopular, "List popular movies"),
		listCommand(movie.CategoryTrending, "List movies trending this week"),
		listCommand(movie.CategoryUpcoming, "List upcoming releases"),
	}
	return app
}

func listCommand(category movie.Category, usage string) cli.Command {
	return cli.Command{
		Name:  string(category),
		Usage: usage,
		Action: func(c *cli.Context) error {
			return printMovies(c, func(ctx context.Context, svc movie.Service) []movie.Summary {
				return svc.ListByCategory(ctx, category)
			})
		},
	}
}

func printMovies(c *cli.Context, fetch func(context.Context, movie.Service) []movie.Summary) error {
	log := logger.NOOPLogger
	if c.GlobalBool(verboseFlag) {
		l, err := zap.NewDevelopment()
		if err != nil {
			return errors.Wrap(err, "failed to init logger")
		}
		log = l.Sugar()
	}

	timeout := c.GlobalDuration(timeoutFlag)
	svc := movie.NewUsecase(tmdb.NewClient(tmdb.Options{
		APIKey:   c.GlobalString(keyFlag),
		BaseURL:  c.GlobalString(baseURLFlag),
		Language: c.GlobalString(languageFlag),
		Timeout:  timeout,
	}), movie.WithLogger(log))

	ctx, cancel := context.WithTimeout(context.Background(), timeout+time.Second)
	defer cancel()

	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(fetch(ctx, svc)); err != nil {
		return errors.Wrap(err, "failed to write results")
	}
	return nil
}
