package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/apex/log"
	"github.com/mergington/activities/pkg/clog"
	"github.com/mergington/activities/pkg/config"
	"github.com/mergington/activities/pkg/rosterdb"
	"github.com/mergington/activities/pkg/rosterdb/stor"
	"github.com/mergington/activities/pkg/rosterhub"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	serverURL string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mhsactd",
	Short: "Run the Mergington High School activities API server",
	Long: `Runs the activities API server. Students can list extracurricular
activities, sign up for one, and cancel a signup. Rosters are held in
memory and reset to the school's starting rosters on every restart.

The list, signup and cancel subcommands talk to a running server.`,
	Run: func(cmd *cobra.Command, args []string) {
		mustLoadConfig()

		logHandler := mustSetupLogging()
		defer logHandler.Close()

		rosterStor := mustCreateRosterStor()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		hub := rosterhub.NewHub()
		go hub.Run(ctx)

		e := newEcho(RouteOpts{
			rosterStor: rosterStor,
			hub:        hub,
			staticDir:  config.GetKeyWithDefault("MHS_STATIC_DIR", "static"),
		})

		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := e.Shutdown(shutdownCtx); err != nil {
				log.Errorf("Unable to shut down cleanly: %s", err)
			}
		}()

		port := config.GetKeyWithDefault("MHS_PORT", "8000")
		log.Infof("Listening on port %s", port)
		if err := e.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Unable to start server: %v", err)
		}
	},
}

// mustLoadConfig selects viper when --config is given, otherwise the
// environment plus the optional MHS_DOTENV_PATH file.
func mustLoadConfig() {
	if cfgFile != "" {
		config.SetConfig(config.NewViperConfig(cfgFile))
	} else {
		config.SetConfig(config.NewDotenvConfig(os.Getenv("MHS_DOTENV_PATH")))
	}

	if err := config.Load(); err != nil {
		log.Fatalf("Unable to load configuration: %s", err)
	}
}

// mustSetupLogging installs the global log handler. Callers close the
// returned handler on shutdown so a log file is flushed and released.
func mustSetupLogging() *clog.Handler {
	logLevel := config.GetKeyWithDefault("MHS_LOG_LEVEL", "info")
	logOutput := config.GetKeyWithDefault("MHS_LOG_OUTPUT", "stdout")

	handler, err := clog.Setup(logLevel, logOutput)
	if err != nil {
		log.Fatalf("Unable to set up logging: %s", err)
	}

	return handler
}

func mustCreateRosterStor() stor.RosterStor {
	kind := config.GetKeyWithDefault("MHS_STORE", stor.RosterStorMemory)

	var rosterStor stor.RosterStor
	var err error

	switch kind {
	case stor.RosterStorSqlite:
		db := rosterdb.MustConnectToDB(config.GetKeyWithDefault("MHS_SQLITE_DSN", rosterdb.DefaultSqliteDSN))
		rosterStor, err = stor.NewRosterStor(kind, db)
	default:
		rosterStor, err = stor.NewRosterStor(kind, nil)
	}

	if err != nil {
		log.Fatalf("Unable to create roster store: %s", err)
	}

	log.Infof("Using %s roster store", kind)
	return rosterStor
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml, toml or json)")
	rootCmd.PersistentFlags().StringVarP(&serverURL, "server", "s", "http://localhost:8000", "activities server URL for client commands")
}
