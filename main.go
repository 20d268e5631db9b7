package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"MatrixBoard/internal/call"
	"MatrixBoard/internal/config"
	"MatrixBoard/internal/net"
	"MatrixBoard/internal/state"
	"MatrixBoard/internal/ui"
)

const (
	AppID          = "io.matrixboard.app"
	browseTimeout  = 3 * time.Second
	connectTimeout = 5 * time.Second
)

func main() {
	a := app.NewWithID(AppID)
	cfg := config.Load(a.Preferences())
	store := state.NewStore(a.Preferences())
	session := call.NewSession(nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	opts := ui.Options{Config: cfg, Store: store, Session: session}
	args := os.Args
	var address string
	if len(args) > 1 && strings.HasPrefix(args[1], net.CustomURLScheme) {
		log.Println("Starting as CLIENT")
		address, _ = net.ParseShareLink(args[1])
	} else {
		log.Println("Starting as HOST")
		address = runHost(ctx, cfg.SignalPort)
		opts.ShareLink = net.ShareLink(net.OutgoingIP(), cfg.SignalPort)
	}

	m := ui.NewMainWindow(a, opts)
	go connectSignal(ctx, address, session, m)
	m.Window.ShowAndRun()
}

// runHost starts the signaling hub and advertises it on the LAN. It
// returns the address the host's own call page connects to.
func runHost(ctx context.Context, port int) string {
	hub := net.NewHub()
	go func() {
		if err := hub.Serve(ctx, fmt.Sprintf(":%d", port)); err != nil {
			log.Fatalf("[HOST] %v", err)
		}
	}()

	server, err := net.Advertise(port)
	if err != nil {
		log.Printf("[HOST] LAN discovery unavailable: %v", err)
	} else {
		go func() {
			<-ctx.Done()
			server.Shutdown()
		}()
	}
	return fmt.Sprintf("127.0.0.1:%d", port)
}

// connectSignal attaches the call session to the hub at address, browsing
// the LAN for one when address is empty.
func connectSignal(ctx context.Context, address string, session *call.Session, m *ui.MainWindow) {
	time.Sleep(500 * time.Millisecond) // Give UI time to launch

	if address == "" {
		m.SetStatus("Looking for a host on the local network...")
		found, err := net.Browse(browseTimeout)
		if err != nil {
			log.Printf("[SIGNAL] %v", err)
		}
		if len(found) == 0 {
			m.SetStatus("No host found. Video call is unavailable.")
			return
		}
		address = found[0]
	}

	dialCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	client, err := net.Dial(dialCtx, net.SignalURL(address))
	if err != nil {
		m.SetStatus(fmt.Sprintf("Connection failed: %v", err))
		return
	}
	go func() {
		<-ctx.Done()
		client.Close()
	}()

	session.SetSignaler(client)
	m.SetStatus("Connected to signaling server at " + address)

	err = client.Listen(func(msg net.Message) {
		fyne.Do(func() { session.HandleMessage(msg) })
	})
	session.SetSignaler(nil)
	if err != nil {
		m.SetStatus(fmt.Sprintf("Disconnected from host: %v", err))
	}
}
