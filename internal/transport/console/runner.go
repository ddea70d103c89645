package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iamasit07/connect4-ai/internal/domain"
	"github.com/iamasit07/connect4-ai/internal/service/game"
)

// Runner plays one session over a line-based reader and writer.
type Runner struct {
	in      *bufio.Scanner
	out     io.Writer
	session *game.Session
}

func NewRunner(in io.Reader, out io.Writer, session *game.Session) *Runner {
	return &Runner{in: bufio.NewScanner(in), out: out, session: session}
}

// Run plays until the game ends, the input is exhausted, the player quits or
// ctx is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	r.printBoard()

	for !r.session.IsFinished() {
		if err := ctx.Err(); err != nil {
			return err
		}

		if r.session.Turn() == domain.AIPiece {
			fmt.Fprintln(r.out, "AI is thinking...")
			move, err := r.session.PlayAI()
			if err != nil {
				return fmt.Errorf("ai move: %w", err)
			}
			fmt.Fprintf(r.out, "AI dropped a piece in column %d\n", move.Column)
			r.printBoard()
			continue
		}

		quit, err := r.humanTurn()
		if err != nil {
			return err
		}
		if quit {
			fmt.Fprintln(r.out, "Goodbye!")
			return nil
		}
	}

	r.printResult()
	return nil
}

// humanTurn prompts until a move is played or the player quits.
func (r *Runner) humanTurn() (quit bool, err error) {
	for {
		fmt.Fprint(r.out, "Enter your column (0-6): ")
		if !r.in.Scan() {
			fmt.Fprintln(r.out)
			return true, r.in.Err()
		}

		line := strings.ToLower(strings.TrimSpace(r.in.Text()))
		switch line {
		case "quit", "exit", "q":
			return true, nil
		case "hint":
			col, err := r.session.Hint()
			if err != nil {
				return false, fmt.Errorf("hint: %w", err)
			}
			fmt.Fprintf(r.out, "Hint: try column %d\n", col)
			continue
		}

		col, convErr := strconv.Atoi(line)
		if convErr != nil {
			fmt.Fprintln(r.out, "Invalid input. Please enter a number between 0-6.")
			continue
		}

		if _, err := r.session.PlayHuman(col); err != nil {
			if errors.Is(err, domain.ErrInvalidMove) {
				fmt.Fprintln(r.out, "Invalid column. Please try again.")
				continue
			}
			return false, fmt.Errorf("player move: %w", err)
		}
		r.printBoard()
		return false, nil
	}
}

func (r *Runner) printBoard() {
	fmt.Fprintln(r.out)
	fmt.Fprint(r.out, r.session.State().Board.String())
	fmt.Fprintln(r.out)
}

func (r *Runner) printResult() {
	switch r.session.Status() {
	case domain.StatusPlayerWin:
		fmt.Fprintln(r.out, "Congratulations! You win!")
	case domain.StatusAIWin:
		fmt.Fprintln(r.out, "AI wins! Better luck next time.")
	case domain.StatusDraw:
		fmt.Fprintln(r.out, "It's a tie!")
	}
}
