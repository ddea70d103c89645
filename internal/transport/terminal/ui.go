// Package terminal plays a session in a full-screen terminal UI.
package terminal

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/gdamore/tcell/v2"
	"github.com/iamasit07/connect4-ai/internal/domain"
	"github.com/iamasit07/connect4-ai/internal/service/game"
	"github.com/mattn/go-runewidth"
)

const (
	cellWidth   = 4
	cellHeight  = 2
	boardWidth  = domain.Columns*cellWidth + 1
	boardHeight = domain.Rows * cellHeight
	padTop      = 4
	padLeft     = 1
	panelLeft   = boardWidth + 4
)

const (
	hozRune    = '─'
	verRune    = '│'
	crossRune  = '┼'
	markerRune = '▼'
)

// UI renders one session and routes keys to it.
type UI struct {
	session  *game.Session
	screen   tcell.Screen
	style    tcell.Style
	inputCol int
	status   string
}

// New opens the terminal and draws the board.
func New(session *game.Session) (*UI, error) {
	tcell.SetEncodingFallback(tcell.EncodingFallbackASCII)

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("new screen: %w", err)
	}
	return NewWithScreen(session, screen)
}

// NewWithScreen draws onto an existing screen, such as a simulation screen.
func NewWithScreen(session *game.Session, screen tcell.Screen) (*UI, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("screen init: %w", err)
	}

	u := UI{
		session:  session,
		screen:   screen,
		style:    tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite),
		inputCol: domain.Columns / 2,
	}
	u.draw()

	return &u, nil
}

// Shutdown tears down the terminal.
func (u *UI) Shutdown() {
	u.screen.Fini()
}

// Run handles terminal events in a goroutine. The returned channel is closed
// when the player quits.
func (u *UI) Run() chan struct{} {
	quit := make(chan struct{})

	go func() {
		defer close(quit)
		defer func() {
			if r := recover(); r != nil {
				u.screen.Fini()
				fmt.Println(r)
				debug.PrintStack()
			}
		}()

		u.aiTurn()

		for {
			event := u.screen.PollEvent()
			if event == nil {
				return
			}

			switch ev := event.(type) {
			case *tcell.EventResize:
				u.screen.Sync()
				u.draw()
			case *tcell.EventKey:
				if u.HandleKey(ev) {
					return
				}
			}
		}
	}()

	return quit
}

// HandleKey applies one key press and reports whether the player quit.
func (u *UI) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true

	case tcell.KeyLeft:
		u.moveSelector(-1)

	case tcell.KeyRight:
		u.moveSelector(1)

	case tcell.KeyEnter, tcell.KeyDown:
		u.userTurn()

	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case 'n':
			u.newGame()
		case 'h':
			u.hint()
		case ' ':
			u.userTurn()
		}
	}
	return false
}

func (u *UI) moveSelector(delta int) {
	if u.session.IsFinished() {
		return
	}
	col := u.inputCol + delta
	if col < 0 || col >= domain.Columns {
		return
	}
	u.inputCol = col
	u.draw()
}

func (u *UI) newGame() {
	u.session.Reset()
	u.inputCol = domain.Columns / 2
	u.status = ""
	u.draw()
	u.aiTurn()
}

func (u *UI) hint() {
	col, err := u.session.Hint()
	if err != nil {
		return
	}
	u.inputCol = col
	u.status = fmt.Sprintf("Hint: try column %d", col)
	u.draw()
}

func (u *UI) userTurn() {
	if u.session.IsFinished() {
		return
	}
	if u.session.Turn() != domain.PlayerPiece {
		u.screen.Beep()
		return
	}

	if _, err := u.session.PlayHuman(u.inputCol); err != nil {
		if errors.Is(err, domain.ErrColumnFull) {
			u.status = "Column is full. Please try again."
		} else {
			u.status = err.Error()
		}
		u.screen.Beep()
		u.draw()
		return
	}

	u.status = ""
	u.draw()
	u.aiTurn()
}

func (u *UI) aiTurn() {
	if u.session.IsFinished() || u.session.Turn() != domain.AIPiece {
		return
	}

	u.status = "AI is thinking..."
	u.draw()

	move, err := u.session.PlayAI()
	if err != nil {
		u.status = err.Error()
		u.draw()
		return
	}

	u.status = fmt.Sprintf("AI dropped a piece in column %d", move.Column)
	u.draw()
}

func (u *UI) draw() {
	u.screen.Clear()
	state := u.session.State()

	u.print(padLeft, 1, fmt.Sprintf("Connect 4 vs %s (%s, depth %d)", state.BotName, state.Difficulty, state.Depth), u.style)
	u.drawGrid()

	for row := 0; row < domain.Rows; row++ {
		for col := 0; col < domain.Columns; col++ {
			if p := state.Board[row][col]; p != domain.Empty {
				x, y := cellOrigin(row, col)
				u.print(x, y, p.Symbol(), u.pieceStyle(p))
			}
		}
	}

	if !state.Status.IsTerminal() {
		x, _ := cellOrigin(0, u.inputCol)
		u.print(x, padTop-1, string(markerRune), u.pieceStyle(domain.PlayerPiece))
	}

	for col := 0; col < domain.Columns; col++ {
		x, _ := cellOrigin(0, col)
		u.print(x, padTop+boardHeight+1, fmt.Sprint(col), u.style)
	}

	u.print(panelLeft, padTop-1, "<←/→> move  <enter> drop", u.style)
	u.print(panelLeft, padTop, "<h> hint  <n> new game  <q> quit", u.style)
	u.print(panelLeft, padTop+2, "You: "+domain.PlayerPiece.Symbol()+"   AI: "+domain.AIPiece.Symbol(), u.style)
	u.print(panelLeft, padTop+4, u.resultLine(state), u.style)
	u.print(panelLeft, padTop+5, u.status, u.style)

	u.screen.Show()
}

func (u *UI) drawGrid() {
	style := u.style.Foreground(tcell.ColorGrey)
	for h := 0; h <= boardHeight; h++ {
		for w := 0; w < boardWidth; w++ {
			onRow := h%cellHeight == 0
			onCol := w%cellWidth == 0
			switch {
			case onRow && onCol:
				u.screen.SetContent(w+padLeft, h+padTop, crossRune, nil, style)
			case onRow:
				u.screen.SetContent(w+padLeft, h+padTop, hozRune, nil, style)
			case onCol:
				u.screen.SetContent(w+padLeft, h+padTop, verRune, nil, style)
			}
		}
	}
}

func (u *UI) resultLine(state game.Snapshot) string {
	switch state.Status {
	case domain.StatusPlayerWin:
		return "Congratulations! You win!"
	case domain.StatusAIWin:
		return "AI wins! Better luck next time."
	case domain.StatusDraw:
		return "It's a tie!"
	}
	if state.Turn == domain.PlayerPiece {
		return "Your turn"
	}
	return "AI's turn"
}

func (u *UI) pieceStyle(p domain.Piece) tcell.Style {
	if p == domain.AIPiece {
		return u.style.Foreground(tcell.ColorYellow).Bold(true)
	}
	return u.style.Foreground(tcell.ColorRed).Bold(true)
}

// cellOrigin is the screen position where a cell's piece is drawn.
func cellOrigin(row, col int) (int, int) {
	return padLeft + col*cellWidth + cellWidth/2, padTop + row*cellHeight + 1
}

func (u *UI) print(x, y int, str string, style tcell.Style) {
	for _, c := range str {
		var comb []rune
		w := runewidth.RuneWidth(c)
		if w == 0 {
			comb = []rune{c}
			c = ' '
			w = 1
		}
		u.screen.SetContent(x, y, c, comb, style)
		x += w
	}
}
