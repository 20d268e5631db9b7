package ui

import (
	"errors"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"MatrixBoard/internal/call"
)

const (
	msgJoinRequires = "Room ID and Peer ID are required to join a room."
	msgNoMedia      = "Video and screen sharing are not available. The room shows who is present."
)

// CallPage joins a call room and lists the peers in it.
type CallPage struct {
	session *call.Session
	room    *widget.Entry
	join    *widget.Button
	leave   *widget.Button
	video   *widget.Button
	screen  *widget.Button
	roster  *widget.List
	status  *widget.Label
	peers   []string
	content fyne.CanvasObject

	// OnRoomChange fires with the room just joined, for remembering it.
	OnRoomChange func(string)
}

func NewCallPage(session *call.Session, roomHint string) *CallPage {
	p := &CallPage{
		session: session,
		room:    widget.NewEntry(),
		status:  widget.NewLabel(""),
	}
	p.room.SetPlaceHolder("Room ID")
	p.room.SetText(roomHint)
	p.join = widget.NewButtonWithIcon("Join Room", theme.LoginIcon(), p.Join)
	p.leave = widget.NewButtonWithIcon("Leave Room", theme.LogoutIcon(), p.Leave)
	p.leave.Disable()

	p.video = widget.NewButtonWithIcon("Start Video", theme.MediaVideoIcon(), nil)
	p.video.Disable()
	p.screen = widget.NewButtonWithIcon("Share Screen", theme.ComputerIcon(), nil)
	p.screen.Disable()

	p.roster = widget.NewList(
		func() int { return len(p.peers) },
		func() fyne.CanvasObject {
			return container.NewHBox(widget.NewIcon(theme.AccountIcon()), widget.NewLabel("peer"))
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id < len(p.peers) {
				obj.(*fyne.Container).Objects[1].(*widget.Label).SetText(p.peers[id])
			}
		},
	)

	session.OnNotice = p.setStatus
	session.OnPeersChanged = func(peers []string) {
		fyne.Do(func() {
			p.peers = peers
			p.roster.Refresh()
		})
	}

	peer := widget.NewLabel("Peer ID: " + session.PeerID())
	peer.Selectable = true
	top := container.NewVBox(
		widget.NewLabelWithStyle("Video Call", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		peer,
		container.NewBorder(nil, nil, nil, container.NewHBox(p.join, p.leave), p.room),
		container.NewHBox(p.video, p.screen, widget.NewLabel(msgNoMedia)),
		widget.NewLabel("In this room:"),
	)
	p.content = container.NewBorder(top, p.status, nil, nil, p.roster)
	return p
}

func (p *CallPage) Content() fyne.CanvasObject {
	return p.content
}

func (p *CallPage) setStatus(text string) {
	fyne.Do(func() { p.status.SetText(text) })
}

func (p *CallPage) Join() {
	room := p.room.Text
	if err := p.session.Join(room); err != nil {
		log.Printf("[CALL] join failed: %v", err)
		if errors.Is(err, call.ErrNotReady) {
			p.setStatus(msgJoinRequires)
		} else {
			p.setStatus(err.Error())
		}
		return
	}
	p.leave.Enable()
	if p.OnRoomChange != nil {
		p.OnRoomChange(room)
	}
}

func (p *CallPage) Leave() {
	if err := p.session.Leave(); err != nil {
		log.Printf("[CALL] leave failed: %v", err)
		p.setStatus(err.Error())
	}
	p.leave.Disable()
}
