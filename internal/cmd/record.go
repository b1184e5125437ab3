package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/bloodworks-io/phlox-cli/internal/api"
	"github.com/bloodworks-io/phlox-cli/internal/config"
	"github.com/bloodworks-io/phlox-cli/internal/recorder"
	"github.com/bloodworks-io/phlox-cli/internal/tui/styles"
	"github.com/bloodworks-io/phlox-cli/internal/tui/views"
)

// uploadTimeout bounds a recording upload plus scribe processing. Long
// encounters take minutes to transcribe, so the regular request timeout
// does not apply here.
const uploadTimeout = 10 * time.Minute

var recordWatch bool

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record an encounter and send it for transcription",
	Long: `Start an interactive recording session. Audio is captured with ffmpeg or
arecord into the recordings directory; when you stop and send, the server
transcribes the encounter and drafts a clinical note.

With --watch, no session is started: the recordings directory is watched
and every new audio file is sent automatically, which pairs with external
recorders that drop files into that directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		if err := config.EnsureRecordingsDir(cfg); err != nil {
			return err
		}

		client := newClient(api.WithTimeout(uploadTimeout))

		// autoSendRecordings in the config makes watch mode the default.
		if cfg.AutoSendRecordings && !cmd.Flags().Changed("watch") {
			recordWatch = true
		}

		if recordWatch {
			return watchRecordings(cfg, client)
		}

		runner, err := recorder.NewExecRunner(cfg.CaptureCommand)
		if err != nil {
			return fmt.Errorf("no audio capture tool found: %w (install ffmpeg, or set captureCommand)", err)
		}
		log.Debug("capture tool", "binary", runner.Binary())

		session := recorder.NewSession(runner, cfg.RecordingsDir)
		resp, err := views.RunRecorder(session, client, cfg.ServerURL)
		if err != nil {
			return err
		}
		if resp == nil {
			fmt.Println(styles.Dim("Recording discarded."))
			return nil
		}

		fmt.Println(styles.Green("Note saved to the server.") + " " + styles.Dim(session.Path()))
		return nil
	},
}

// watchRecordings sends every new audio file in the recordings directory
// until interrupted.
func watchRecordings(cfg *config.Config, client *api.Client) error {
	watcher, err := recorder.NewWatcher(cfg.RecordingsDir)
	if err != nil {
		return err
	}
	defer watcher.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Println(styles.Teal(styles.CompactLogo) + "  " + styles.Dim("watching "+cfg.RecordingsDir+" (ctrl+c to stop)"))

	for ev := range watcher.Watch(ctx) {
		if ev.Type != recorder.EventAdded {
			continue
		}
		if err := sendRecording(ctx, client, ev.Path); err != nil {
			log.Error("sending recording", "file", filepath.Base(ev.Path), "err", err)
			continue
		}
		fmt.Println(styles.Green("✓") + " " + styles.Dim("sent "+filepath.Base(ev.Path)))
	}
	return nil
}

func sendRecording(ctx context.Context, client *api.Client, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = client.Transcribe(ctx, filepath.Base(path), f, api.PatientDetails{})
	return err
}

func init() {
	recordCmd.Flags().BoolVar(&recordWatch, "watch", false, "watch the recordings directory and auto-send new files")
	rootCmd.AddCommand(recordCmd)
}
