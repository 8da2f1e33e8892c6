// Package main provides the trackbind CLI entry point.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/trackbind/internal/app/bridge"
	"github.com/osa030/trackbind/internal/domain/event"
	"github.com/osa030/trackbind/internal/domain/options"
	"github.com/osa030/trackbind/internal/domain/player"
	"github.com/osa030/trackbind/internal/infra/config"
	"github.com/osa030/trackbind/internal/infra/logger"
	"github.com/osa030/trackbind/internal/infra/simnative"
	"github.com/osa030/trackbind/internal/native"
)

var (
	app     = kingpin.New("trackbind", "Track player binding toolkit")
	verbose = app.Flag("verbose", "Enable verbose (DEBUG) logging").Short('v').Bool()
	logfile = app.Flag("logfile", "Path to log file (default: stderr)").String()

	// profiles command
	profilesCmd = app.Command("profiles", "List the simulated platform profiles")

	// constants command
	constantsCmd     = app.Command("constants", "Print the constant table a platform exports")
	constantsProfile = constantsCmd.Flag("profile", "Platform profile").Default("android").Envar("TRACKBIND_PROFILE").String()

	// check command
	checkCmd    = app.Command("check", "Validate a config file and print the encoded native payloads")
	checkConfig = checkCmd.Arg("config", "Path to config file (.yaml or .toml)").Default("trackbind.yaml").String()

	// simulate command
	simulateCmd    = app.Command("simulate", "Run a config against a simulated native player")
	simulateConfig = simulateCmd.Arg("config", "Path to config file (.yaml or .toml)").Default("trackbind.yaml").String()
)

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	// Parse command
	command := kingpin.MustParse(app.Parse(os.Args[1:]))
	var err error

	// Initialize logger
	loggerConfig := logger.Config{Output: "stderr", Level: "info"}
	if lv := os.Getenv("TRACKBIND_LOG_LEVEL"); lv != "" {
		loggerConfig.Level = lv
	}
	if *verbose {
		loggerConfig.Level = "debug"
	}
	if *logfile != "" {
		loggerConfig.Output = *logfile
	}
	if err := initLogger(loggerConfig); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer func() { _ = logCloser.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Execute command
	switch command {
	case profilesCmd.FullCommand():
		for _, name := range simnative.ProfileNames() {
			fmt.Println(name)
		}
	case constantsCmd.FullCommand():
		err = printConstants(os.Stdout, *constantsProfile)
	case checkCmd.FullCommand():
		err = check(ctx, os.Stdout, *checkConfig)
	case simulateCmd.FullCommand():
		err = simulate(ctx, os.Stdout, *simulateConfig)
	}
	if err != nil {
		_ = logCloser.Close()
		fail(err)
	}
}

var logCloser io.Closer

func initLogger(cfg logger.Config) error {
	closer, err := logger.Init(cfg)
	if err != nil {
		return err
	}
	if logCloser != nil {
		_ = logCloser.Close()
	}
	logCloser = closer
	return nil
}

// loadConfig loads path and applies its log settings unless flags set them.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if !*verbose && *logfile == "" {
		if err := initLogger(logger.Config{Output: cfg.Log.Output, Level: cfg.Log.Level}); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	for _, hint := range strings.Split(errors.FlattenHints(err), "\n") {
		if hint != "" {
			fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
		}
	}
	os.Exit(1)
}

// newPlayer builds a player bound to a simulated module for profileName.
func newPlayer(ctx context.Context, profileName string, cfg bridge.Config) (*bridge.Player, *simnative.Module, error) {
	profile, err := simnative.LoadProfile(profileName)
	if err != nil {
		return nil, nil, err
	}
	sim := simnative.New(profile)
	p := bridge.New(sim, cfg)
	if err := p.Init(ctx); err != nil {
		p.Close()
		return nil, nil, err
	}
	return p, sim, nil
}

func printConstants(w io.Writer, profileName string) error {
	profile, err := simnative.LoadProfile(profileName)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "=== %s ===\n", profile.Name)
	names := make([]string, 0, len(profile.Constants))
	for name := range profile.Constants {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-36s %d\n", name, profile.Constants[name])
	}

	d := profile.Defaults
	fmt.Fprintln(w, "\nPlayer defaults:")
	fmt.Fprintf(w, "  minBuffer:     %gs\n", d.MinBuffer)
	fmt.Fprintf(w, "  maxBuffer:     %gs\n", d.MaxBuffer)
	fmt.Fprintf(w, "  playBuffer:    %gs\n", d.PlayBuffer)
	fmt.Fprintf(w, "  maxCacheSize:  %s\n", formatCacheSize(d.MaxCacheSize))
	fmt.Fprintf(w, "  waitForBuffer: %v\n", d.WaitForBuffer)
	return nil
}

// formatCacheSize renders a cache size given in kilobytes.
func formatCacheSize(kb float64) string {
	if kb <= 0 {
		return "disabled"
	}
	return humanize.IBytes(uint64(kb * 1024))
}

func check(ctx context.Context, w io.Writer, path string) error {
	cfg, err := loadConfig(path)
	if err != nil {
		return err
	}
	zlog.Debug().Str("profile", cfg.Profile).Int("tracks", len(cfg.Tracks)).Msg("Config loaded")

	advisories := append(cfg.Player.Advisories(), cfg.Metadata.Advisories()...)
	if len(advisories) == 0 {
		fmt.Fprintln(w, "No advisories")
	}
	for _, a := range advisories {
		fmt.Fprintf(w, "Advisory: %s\n", a)
	}
	if cfg.Player.MaxCacheSize != nil {
		fmt.Fprintf(w, "Cache size: %s\n", formatCacheSize(*cfg.Player.MaxCacheSize))
	}

	p, _, err := newPlayer(ctx, cfg.Profile, bridge.Config{ListenerTimeout: cfg.Dispatch.ListenerTimeout()})
	if err != nil {
		return err
	}
	defer p.Close()

	enc := native.NewEncoder(p.Constants())
	playerPayload, err := enc.PlayerOptions(cfg.Player)
	if err != nil {
		return err
	}
	metadataPayload, err := enc.MetadataOptions(cfg.Metadata)
	if err != nil {
		return err
	}
	tracksPayload, err := enc.Tracks(cfg.Tracks)
	if err != nil {
		return err
	}

	out := json.NewEncoder(w)
	out.SetIndent("", "  ")
	return out.Encode(map[string]any{
		"profile":  cfg.Profile,
		"player":   playerPayload,
		"metadata": metadataPayload,
		"tracks":   tracksPayload,
	})
}

func simulate(ctx context.Context, w io.Writer, path string) error {
	cfg, err := loadConfig(path)
	if err != nil {
		return err
	}

	p, sim, err := newPlayer(ctx, cfg.Profile, bridge.Config{ListenerTimeout: cfg.Dispatch.ListenerTimeout()})
	if err != nil {
		return err
	}
	defer p.Close()

	for _, ev := range event.All() {
		if _, err := p.AddEventListener(ev, func(_ context.Context, msg event.Message) {
			printMessage(w, msg)
		}); err != nil {
			return err
		}
	}

	if err := p.Setup(ctx, cfg.Player); err != nil {
		return err
	}
	if err := p.UpdateOptions(ctx, cfg.Metadata); err != nil {
		return err
	}
	if err := p.Add(ctx, cfg.Tracks, ""); err != nil {
		return err
	}
	fmt.Fprintf(w, "Queued %d track(s): %s\n", len(sim.Queue()), strings.Join(sim.Queue(), ", "))

	done := make(chan error, 1)
	go func() {
		done <- p.Run(ctx)
	}()

	for _, raw := range sampleEvents(p.Constants(), sim.Queue(), cfg.Metadata) {
		if err := sim.Send(ctx, raw); err != nil {
			zlog.Warn().Err(err).Str("event", raw.Name).Msg("Failed to emit event")
			break
		}
	}
	sim.Close()

	if err := <-done; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// sampleEvents scripts a short playback session over the queued tracks.
func sampleEvents(consts *native.Constants, queue []string, md options.MetadataOptions) []native.RawEvent {
	stateEvent := func(s player.State) native.RawEvent {
		code, err := native.Resolve(consts, s)
		if err != nil {
			code = -1
		}
		return native.RawEvent{Name: string(event.PlaybackState), Data: map[string]any{"state": code}}
	}

	events := []native.RawEvent{
		stateEvent(player.StateConnecting),
		stateEvent(player.StateBuffering),
		stateEvent(player.StatePlaying),
	}
	// Track names the track being left, empty at queue start.
	prev := ""
	for _, id := range queue {
		events = append(events, native.RawEvent{
			Name: string(event.PlaybackTrackChanged),
			Data: map[string]any{"track": prev, "position": 0.0, "nextTrack": id},
		})
		prev = id
	}
	if options.HasCapability(md.Capabilities, player.CapabilityPause) {
		events = append(events,
			native.RawEvent{Name: string(event.RemotePause), Data: map[string]any{}},
			stateEvent(player.StatePaused),
		)
	}
	if len(queue) > 0 {
		events = append(events, native.RawEvent{
			Name: string(event.PlaybackQueueEnded),
			Data: map[string]any{"track": queue[len(queue)-1], "position": 0.0},
		})
	}
	return append(events, stateEvent(player.StateStopped))
}

func printMessage(w io.Writer, msg event.Message) {
	switch msg.Type {
	case event.PlaybackState:
		if msg.State != nil {
			fmt.Fprintf(w, "[%s] %s\n", msg.Type, *msg.State)
		} else {
			fmt.Fprintf(w, "[%s] unknown state %v\n", msg.Type, msg.Data["state"])
		}
	case event.PlaybackTrackChanged:
		payload, err := msg.DecodeTrackChanged()
		if err != nil {
			fmt.Fprintf(w, "[%s] %v\n", msg.Type, msg.Data)
			return
		}
		fmt.Fprintf(w, "[%s] %q -> %q\n", msg.Type, payload.Track, payload.NextTrack)
	case event.PlaybackError:
		payload, err := msg.DecodeError()
		if err != nil {
			fmt.Fprintf(w, "[%s] %v\n", msg.Type, msg.Data)
			return
		}
		fmt.Fprintf(w, "[%s] %s: %s\n", msg.Type, payload.Code, payload.Message)
	default:
		fmt.Fprintf(w, "[%s] %v\n", msg.Type, msg.Data)
	}
}
