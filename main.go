package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"StrokeBoard/internal/capture"
	"StrokeBoard/internal/export"
	boardnet "StrokeBoard/internal/net"
	"StrokeBoard/internal/state"
	"StrokeBoard/internal/ui"
)

const (
	AppID           = "io.strokeboard.app"
	CustomURLScheme = "strokeboard://"
	ExportFlag      = "--export="
	Port            = 8888

	discoverTimeout = 3 * time.Second
	dialTimeout     = 5 * time.Second
)

func main() {
	capture.SetLogger(slog.Default())

	a := app.NewWithID(AppID)
	cfg := capture.LoadConfig(a.Preferences())
	seq := state.NewSequencer()

	args, exportPath := splitExportFlag(os.Args)
	var board *ui.BoardWidget
	switch {
	case len(args) > 1 && strings.HasPrefix(args[1], CustomURLScheme):
		board = runClient(a, cfg, seq, strings.TrimSuffix(strings.TrimPrefix(args[1], CustomURLScheme), "/"))
	case len(args) > 1 && args[1] == "--discover":
		addr, err := boardnet.Discover(discoverTimeout)
		if err != nil {
			log.Fatalf("Discovery failed: %v", err)
		}
		log.Printf("Discovered host at %s", addr)
		board = runClient(a, cfg, seq, addr)
	default:
		board = runHost(a, cfg, seq)
	}

	if exportPath != "" {
		if err := export.ExportPDF(exportPath, board.Strokes()); err != nil {
			log.Fatalf("Export failed: %v", err)
		}
		log.Printf("Board exported to %s", exportPath)
	}
}

// splitExportFlag removes --export=<path> from args. The board is written
// to that path as a PDF once the window closes.
func splitExportFlag(args []string) ([]string, string) {
	var rest []string
	path := ""
	for _, arg := range args {
		if strings.HasPrefix(arg, ExportFlag) {
			path = strings.TrimPrefix(arg, ExportFlag)
			continue
		}
		rest = append(rest, arg)
	}
	return rest, path
}

func newBoard(cfg capture.Config, seq *state.Sequencer) *ui.BoardWidget {
	board := ui.NewBoardWidget(cfg, seq)
	// A failed start leaves drawing off; the board still shows remote strokes.
	board.Start()
	return board
}

func runHost(a fyne.App, cfg capture.Config, seq *state.Sequencer) *ui.BoardWidget {
	log.Println("Starting as HOST")
	board := newBoard(cfg, seq)
	hub := boardnet.NewHub()

	hub.OnOp = func(op state.Op) {
		seq.Observe(op.Lamport)
		fyne.Do(func() { board.ApplyRemote(op) })
	}
	board.OnStroke = func(s state.Stroke) {
		hub.Broadcast(seq.Stamp(state.Op{Type: state.OpInsertStroke, Stroke: &s}))
	}
	board.OnClear = func() {
		log.Println("[HOST] Broadcasting clear message for self.")
		hub.Broadcast(seq.Stamp(state.Op{Type: state.OpClear}))
	}

	go startHostServer(hub)

	if server, err := boardnet.Advertise(Port); err != nil {
		log.Printf("[HOST] mDNS advertise failed: %v", err)
	} else {
		defer server.Shutdown()
	}

	shareLink := fmt.Sprintf("%s%s:%d", CustomURLScheme, boardnet.ShareIP(), Port)
	ui.RunApp(a, shareLink, board)
	hub.Close()
	return board
}

func startHostServer(hub *boardnet.Hub) {
	mux := http.NewServeMux()
	mux.Handle(boardnet.BoardPath, hub)
	log.Printf("Host server listening on port %d", Port)
	err := http.ListenAndServe(fmt.Sprintf(":%d", Port), mux)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func runClient(a fyne.App, cfg capture.Config, seq *state.Sequencer, addr string) *ui.BoardWidget {
	log.Println("Starting as CLIENT")
	board := newBoard(cfg, seq)
	go connectToHost(addr, board, seq)
	ui.RunApp(a, "", board)
	return board
}

func connectToHost(addr string, board *ui.BoardWidget, seq *state.Sequencer) {
	time.Sleep(500 * time.Millisecond) // Give UI time to launch

	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	client, err := boardnet.Dial(ctx, addr)
	cancel()
	if err != nil {
		board.SetStatus(fmt.Sprintf("Connection failed: %v", err))
		return
	}
	defer client.Close()

	board.SetStatus("Connected to host as " + client.LocalAddr())
	log.Println("Client connected successfully as", client.LocalAddr())

	fyne.Do(func() {
		board.OnStroke = func(s state.Stroke) {
			op := seq.Stamp(state.Op{Type: state.OpInsertStroke, Stroke: &s})
			if err := client.Send(op); err != nil {
				log.Printf("Failed to send drawing: %v", err)
			}
		}
		board.OnClear = func() {
			if err := client.Send(seq.Stamp(state.Op{Type: state.OpClear})); err != nil {
				log.Printf("Failed to send clear message: %v", err)
			}
		}
	})

	err = client.Listen(func(op state.Op) {
		if op.Site == seq.Site() {
			return
		}
		seq.Observe(op.Lamport)
		fyne.Do(func() { board.ApplyRemote(op) })
	})
	board.SetStatus(fmt.Sprintf("Disconnected from host: %v", err))
}
