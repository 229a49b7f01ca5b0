// Command doomlauncher is a small fyne GUI for picking an IWAD/PWAD
// pair, starting map and skill, then launching doomcore with -iwad,
// -map and (if chosen) -pwad; the skill choice is not passed on —
// grounded on RetroCodeRamen-Nitro-Core-DX's
// fyne_ui.go shell (fyne.App/Window/widget composition), scaled down
// to a picker dialog instead of a full debug-panel front end.
package main

import (
	"fmt"
	"os"
	"os/exec"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

var episodeMaps = []string{"E1M1", "E1M2", "E1M3", "E2M1", "E3M1"}
var skillLevels = []string{"I'm Too Young to Die", "Hey, Not Too Rough", "Hurt Me Plenty", "Ultra-Violence", "Nightmare!"}

type launcher struct {
	app    fyne.App
	window fyne.Window

	iwadPath string
	pwadPath string

	iwadLabel *widget.Label
	pwadLabel *widget.Label
	mapSelect *widget.Select
	skill     *widget.Select
}

func main() {
	l := &launcher{app: app.New()}
	l.window = l.app.NewWindow("doomcore launcher")

	l.iwadLabel = widget.NewLabel("(no IWAD selected)")
	l.pwadLabel = widget.NewLabel("(no PWAD — optional)")
	l.mapSelect = widget.NewSelect(episodeMaps, func(string) {})
	l.mapSelect.SetSelectedIndex(0)
	l.skill = widget.NewSelect(skillLevels, func(string) {})
	l.skill.SetSelectedIndex(2)

	pickIWAD := widget.NewButton("Select IWAD...", l.chooseIWAD)
	pickPWAD := widget.NewButton("Select PWAD...", l.choosePWAD)
	launch := widget.NewButton("Launch", l.launch)

	l.window.SetContent(container.NewVBox(
		widget.NewLabel("IWAD"), l.iwadLabel, pickIWAD,
		widget.NewLabel("PWAD"), l.pwadLabel, pickPWAD,
		widget.NewLabel("Starting map"), l.mapSelect,
		widget.NewLabel("Skill"), l.skill,
		launch,
	))
	l.window.Resize(fyne.NewSize(360, 420))
	l.window.ShowAndRun()
}

func (l *launcher) chooseIWAD() {
	dialog.ShowFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil || rc == nil {
			return
		}
		defer rc.Close()
		l.iwadPath = rc.URI().Path()
		l.iwadLabel.SetText(l.iwadPath)
	}, l.window)
}

func (l *launcher) choosePWAD() {
	dialog.ShowFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil || rc == nil {
			return
		}
		defer rc.Close()
		l.pwadPath = rc.URI().Path()
		l.pwadLabel.SetText(l.pwadPath)
	}, l.window)
}

func (l *launcher) launch() {
	if l.iwadPath == "" {
		dialog.ShowError(fmt.Errorf("select an IWAD first"), l.window)
		return
	}
	bin, err := exec.LookPath("doomcore")
	if err != nil {
		if wd, wdErr := os.Getwd(); wdErr == nil {
			bin = wd + "/doomcore"
		}
	}
	args := []string{"-iwad", l.iwadPath, "-map", l.mapSelect.Selected}
	if l.pwadPath != "" {
		args = append(args, "-pwad", l.pwadPath)
	}
	cmd := exec.Command(bin, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		dialog.ShowError(err, l.window)
		return
	}
	l.window.Close()
}
