package client

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tomz197/vrarcade/internal/draw"
	"github.com/tomz197/vrarcade/internal/loop"
	"github.com/tomz197/vrarcade/internal/loop/config"
	"github.com/tomz197/vrarcade/internal/loop/server"
)

// healthBarWidth is the number of cells of the HUD health bar.
const healthBarWidth = 10

// Render draws one game frame: the wireframe, then the text overlay.
func (c *Client) Render(f *loop.Frame) error {
	c.state.HUD = f.HUD

	// On game state, inactivity or shutdown transitions, do a full terminal clear
	// so UI elements from the previous state don't persist on screen.
	if f.HUD.State != c.state.prevState || c.state.isInactive != c.state.wasInactive ||
		c.state.shuttingDown != c.state.prevShutdown {
		c.screen.Clear()
		c.canvas.ForceRedraw()
		c.state.prevState = f.HUD.State
		c.state.wasInactive = c.state.isInactive
		c.state.prevShutdown = c.state.shuttingDown
	}

	c.canvas.Clear()
	w, h := c.canvas.LogicalWidth(), c.canvas.LogicalHeight()
	for _, l := range f.Lines {
		c.canvas.DrawLine(draw.FromNDC(l.X0, l.Y0, w, h), draw.FromNDC(l.X1, l.Y1, w, h), l.Color)
	}

	c.canvas.Render(c.screen)
	c.canvas.RenderBorder(c.screen)
	c.drawUI(f.HUD)

	return c.screen.Present()
}

// writeAt writes s at the 1-based (col, row) and has the canvas repaint those
// cells next frame.
func (c *Client) writeAt(col, row int, s string) {
	if row < 1 || row > c.canvas.TerminalHeight() || col < 1 {
		return
	}
	c.screen.Text(col, row, s)
	c.canvas.MarkTextDirty(col, row, utf8.RuneCountInString(s))
}

// writeCentered writes s centered on centerX.
func (c *Client) writeCentered(centerX, row int, s string) {
	c.writeAt(centerX-utf8.RuneCountInString(s)/2, row, s)
}

// drawUI draws the text overlay for the current state.
func (c *Client) drawUI(hud loop.Snapshot) {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	if c.state.shuttingDown {
		c.drawShutdownScreen(centerX, centerY)
		return
	}

	if c.state.isInactive {
		c.drawInactivityScreen(centerX, centerY)
		return
	}

	switch hud.State {
	case loop.StateLoading:
		c.writeCentered(centerX, centerY, "Loading assets...")
	case loop.StateReady:
		c.drawStartScreen(centerX, centerY)
	case loop.StatePlaying:
		c.drawPlayingHUD(termWidth, termHeight, hud)
	case loop.StateGameOver:
		c.drawGameOverScreen(centerX, centerY, hud)
	}
}

// drawAlert draws a blocking error box.
func (c *Client) drawAlert(msg string) {
	centerX := c.canvas.TerminalWidth() / 2
	centerY := c.canvas.TerminalHeight() / 2
	border := strings.Repeat("─", utf8.RuneCountInString(msg)+2)

	c.writeCentered(centerX, centerY-2, "┌"+border+"┐")
	c.writeCentered(centerX, centerY-1, "│ "+msg+" │")
	c.writeCentered(centerX, centerY, "└"+border+"┘")
	c.writeCentered(centerX, centerY+2, "Press Q to disconnect")
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	c.writeCentered(centerX, centerY-2, "INACTIVITY WARNING")

	msg := fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.",
		int(config.InactivityDisconnectUser-time.Since(c.lastInput).Seconds()),
	)
	c.writeCentered(centerX, centerY, msg)
	c.writeCentered(centerX, centerY+2, "Press any key to continue")
}

var titleArt = []string{
	`  ___  ___  ___  ___ _____     _   ___  ___   _   ___  ___  `,
	` | _ \/ _ \| _ )/ _ \_   _|   /_\ | _ \/ __| /_\ |   \| __| `,
	` |   / (_) | _ \ (_) || |    / _ \|   / (__ / _ \| |) | _|  `,
	` |_|_\\___/|___/\___/ |_|   /_/ \_\_|_\\___/_/ \_\___/|___| `,
	`                                                            `,
}

var gameOverArt = []string{
	`   ___   _   __  __ ___    _____   _____ ___  `,
	`  / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \ `,
	` | (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   / `,
	`  \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\ `,
	`                                              `,
}

var controlLines = []string{
	"1 / 2  . . . Toggle hands",
	"ARROWS / WASD . . .  Look",
	"SPACE / F  . . Fire hands",
	"G  . . . . . Gaze pointer",
	"Q  . . . . . . . . . Quit",
}

func (c *Client) drawArt(centerX, top int, art []string) {
	width := 0
	for _, line := range art {
		width = max(width, len(line))
	}
	for i, line := range art {
		c.writeAt(centerX-width/2, top+i, line)
	}
}

// drawStartScreen draws the title screen.
func (c *Client) drawStartScreen(centerX, centerY int) {
	titleStartY := centerY - 7
	c.drawArt(centerX, titleStartY, titleArt)

	c.writeCentered(centerX, titleStartY+len(titleArt)+1, "~ Robots, pistols and slow motion ~")

	controlsY := titleStartY + len(titleArt) + 3
	c.writeCentered(centerX, controlsY, "Controls")
	for i, line := range controlLines {
		c.writeCentered(centerX, controlsY+1+i, line)
	}

	// Blinking start prompt
	if time.Now().UnixMilli()/600%2 == 0 {
		c.writeCentered(centerX, controlsY+len(controlLines)+2, ">>  Press ENTER to Start  <<")
	}
}

// drawPlayingHUD draws the in-game HUD.
// Text fields use fixed-width formatting so shrinking values don't leave
// residual characters on screen.
func (c *Client) drawPlayingHUD(termWidth, termHeight int, hud loop.Snapshot) {
	c.writeAt(2, 1, fmt.Sprintf("Score: %-8d Best: %-8d", hud.Score, hud.Best))

	health := c.healthBar(hud.Health, hud.MaxHealth)
	c.writeAt(termWidth-utf8.RuneCountInString(health)-1, 1, health)

	// crosshair
	c.writeAt(termWidth/2, termHeight/2, "+")

	c.writeAt(2, termHeight, fmt.Sprintf("Robots: %-3d Shots: %-3d", hud.Enemies, hud.Shots))

	if c.state.highScoreTime > 0 {
		banner := fmt.Sprintf("NEW HIGH SCORE %d", c.state.highScore)
		c.screen.Styled(termWidth/2-utf8.RuneCountInString(banner)/2, 3, draw.ColorBrightCyan, banner)
		c.canvas.MarkTextDirty(1, 3, termWidth)
	}

	if c.server != nil {
		c.drawLeaderboard(termWidth, termHeight, c.server.GetSnapshot())
	}
}

// healthBar renders health as shaded cells, e.g. "HP [██████░░░░]".
func (c *Client) healthBar(health, maxHealth int) string {
	var b strings.Builder
	b.WriteString("HP [")
	if health <= 1 {
		b.WriteString(draw.ColorRed)
	}
	for i := range healthBarWidth {
		fill := 0.0
		if maxHealth > 0 {
			fill = float64(health)*healthBarWidth/float64(maxHealth) - float64(i)
		}
		switch {
		case fill >= 1:
			b.WriteRune(draw.BlockFull)
		case fill > 0:
			b.WriteRune(draw.ShadeLevel(fill))
		default:
			b.WriteRune(draw.BlockLight)
		}
	}
	if health <= 1 {
		b.WriteString(draw.ColorReset)
	}
	b.WriteString("]")
	return b.String()
}

// drawLeaderboard lists the top runs of the whole server in the bottom right.
func (c *Client) drawLeaderboard(termWidth, termHeight int, snap *server.WorldSnapshot) {
	if snap == nil {
		return
	}
	players := fmt.Sprintf("Players: %-4d", snap.Players)
	c.writeAt(termWidth-len(players)-1, termHeight, players)

	if len(snap.TopScores) == 0 {
		return
	}
	width := config.MaxUsernameLength + 8
	top := termHeight - len(snap.TopScores) - 2
	if top < 3 || termWidth < width+4 {
		return // Not enough space
	}
	col := termWidth - width - 1
	c.writeAt(col, top, fmt.Sprintf("%-*s", width, "Top scores"))
	for i, e := range snap.TopScores {
		line := fmt.Sprintf("%d. %-*s %5d", i+1, config.MaxUsernameLength-1, e.Username, e.Score)
		if e.Username == c.username {
			c.screen.Styled(col, top+1+i, draw.ColorBrightCyan, line)
			c.canvas.MarkTextDirty(col, top+1+i, width)
			continue
		}
		c.writeAt(col, top+1+i, line)
	}
}

// drawGameOverScreen draws the game over screen over the slowed-down room.
func (c *Client) drawGameOverScreen(centerX, centerY int, hud loop.Snapshot) {
	titleStartY := centerY - 6
	c.drawArt(centerX, titleStartY, gameOverArt)

	c.writeCentered(centerX, titleStartY+len(gameOverArt)+1, fmt.Sprintf("Score: %d", hud.Score))
	c.writeCentered(centerX, titleStartY+len(gameOverArt)+2, fmt.Sprintf("Best:  %d", hud.Best))
	c.writeCentered(centerX, titleStartY+len(gameOverArt)+3, fmt.Sprintf("Shots: %d", hud.Fired))

	if time.Now().UnixMilli()/600%2 == 0 {
		c.writeCentered(centerX, titleStartY+len(gameOverArt)+5, ">>  Press ENTER to Restart  <<")
	}
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	c.writeCentered(centerX, centerY-3, "SERVER SHUTTING DOWN")
	c.writeCentered(centerX, centerY-1, "The server is restarting for maintenance.")
	c.writeCentered(centerX, centerY, "Please reconnect in a moment.")

	remaining := int(c.state.shutdownTimer) + 1
	c.writeCentered(centerX, centerY+2, fmt.Sprintf("Disconnecting in %d seconds...", remaining))
	c.writeCentered(centerX, centerY+4, "Press Q to disconnect now")
}
