package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"asset-sync/feature/synchronizer"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// installCmd represents the install command
var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Fetch the shell of the build into the staging cache",
	Long:  `Runs the install phase only. The content cache and the persisted manifest are not touched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.sync.Install(cmd.Context()); err != nil {
			return err
		}
		return printJSON(a.sync.Status())
	},
}

// activateCmd represents the activate command
var activateCmd = &cobra.Command{
	Use:   "activate",
	Short: "Install the build and activate it immediately",
	Long:  `Installs the shell, then reconciles the content cache with the build and persists its resource map.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		if err := a.sync.Install(ctx); err != nil {
			return err
		}
		result, err := a.sync.Activate(ctx)
		if result != nil {
			_ = printJSON(result)
		}
		return err
	},
}

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Run a full update cycle",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		result, err := a.sync.Update(cmd.Context())
		if err != nil {
			return err
		}
		logActivation(a.logger, result)
		return printJSON(map[string]any{"status": a.sync.Status(), "activation": result})
	},
}

// offlineCmd represents the offline command
var offlineCmd = &cobra.Command{
	Use:   "offline",
	Short: "Update, then download every resource for offline use",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMessage(cmd, synchronizer.MessageDownloadOffline)
	},
}

// messageCmd represents the message command
var messageCmd = &cobra.Command{
	Use:       "message [skipWaiting|downloadOffline]",
	Short:     "Send a control message to the synchronizer",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(synchronizer.MessageSkipWaiting), string(synchronizer.MessageDownloadOffline)},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMessage(cmd, synchronizer.Message(args[0]))
	},
}

func init() {
	RootCmd.AddCommand(installCmd, activateCmd, updateCmd, offlineCmd, messageCmd)
}

// runMessage installs the build and delivers msg. skipWaiting activates the
// installed build; every other message runs after a full update.
func runMessage(cmd *cobra.Command, msg synchronizer.Message) error {
	switch msg {
	case synchronizer.MessageSkipWaiting, synchronizer.MessageDownloadOffline:
	default:
		return fmt.Errorf("%w: %q", synchronizer.ErrUnknownMessage, msg)
	}

	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.sync.Install(ctx); err != nil {
		return err
	}
	if msg != synchronizer.MessageSkipWaiting {
		result, err := a.sync.Activate(ctx)
		if err != nil {
			return err
		}
		logActivation(a.logger, result)
	}

	result, err := a.sync.HandleMessage(ctx, msg)
	if err != nil {
		return err
	}
	return printJSON(result)
}

func logActivation(l *zap.Logger, result *synchronizer.ActivationResult) {
	if result == nil {
		l.Info("Installed build is waiting")
		return
	}
	l.Info("Activation finished",
		zap.String("outcome", string(result.Outcome)),
		zap.String("branch", string(result.Branch)),
		zap.String("version", result.Version),
		zap.Int("retained", result.Summary.Retained),
		zap.Int("evicted", result.Summary.Evicted),
		zap.Int("promoted", result.Summary.Promoted))
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
