// gridchess - a terminal chess game against a minimax engine
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gridchess/internal/chess"
	"gridchess/internal/engine"
	"gridchess/internal/storage"
)

func main() {
	depthFlag := flag.Int("depth", 0, "search depth (overrides difficulty preset)")
	colorFlag := flag.String("color", "", "side to play: white or black (defaults to stored preference)")
	diffFlag := flag.String("difficulty", "", "difficulty preset: easy, medium or hard")
	noStore := flag.Bool("no-store", false, "skip preference and statistics storage")
	flag.Parse()

	var store *storage.Storage
	if !*noStore {
		var err error
		store, err = storage.NewStorage()
		if err != nil {
			log.Printf("storage unavailable: %v", err)
		} else {
			defer store.Close()
		}
	}

	prefs := storage.DefaultPreferences()
	if store != nil {
		loaded, err := store.LoadPreferences()
		if err != nil {
			log.Printf("loading preferences: %v", err)
		} else {
			prefs = loaded
		}
	}

	difficulty := resolveDifficulty(*diffFlag, prefs.Difficulty)
	depth := engine.DifficultyDepth[difficulty]
	if *depthFlag > 0 {
		depth = *depthFlag
	}
	playerColor := resolveColor(*colorFlag, prefs.PlayerColor)

	if store != nil {
		prefs.Difficulty = toStorageDifficulty(difficulty)
		if playerColor == chess.White {
			prefs.PlayerColor = storage.ColorWhite
		} else {
			prefs.PlayerColor = storage.ColorBlack
		}
		if err := store.SavePreferences(prefs); err != nil {
			log.Printf("saving preferences: %v", err)
		}
	}

	fmt.Printf("gridchess: you play %s, engine depth %d\n", playerColor, depth)
	fmt.Println(`enter moves as "e2e4"; "moves e2" lists destinations; "quit" resigns`)

	board := chess.NewBoard()
	scanner := bufio.NewScanner(os.Stdin)
	start := time.Now()
	halfMoves := 0

	for board.Result() == chess.NoResult {
		if board.SideToMove() != playerColor {
			move := engine.ApplyBestMove(board, depth)
			if move == nil {
				break
			}
			halfMoves++
			fmt.Printf("engine plays %s\n", move)
			continue
		}

		fmt.Print(board)
		if board.InCheck() {
			fmt.Println("check!")
		}
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		input := strings.TrimSpace(scanner.Text())

		switch {
		case input == "quit":
			fmt.Println("resigned")
			return
		case strings.HasPrefix(input, "moves "):
			showMoves(board, strings.TrimPrefix(input, "moves "))
			continue
		}

		if err := playerMove(board, scanner, input); err != nil {
			fmt.Println(err)
			continue
		}
		halfMoves++
	}

	fmt.Print(board)
	result := board.Result()
	fmt.Printf("game over: %s\n", result)

	if store != nil {
		won := (result == chess.WhiteWins && playerColor == chess.White) ||
			(result == chess.BlackWins && playerColor == chess.Black)
		pc := storage.ColorWhite
		if playerColor == chess.Black {
			pc = storage.ColorBlack
		}
		err := store.RecordGame(storage.GameResult{
			Won:         won,
			Draw:        result == chess.Draw,
			PlayerColor: pc,
			Difficulty:  toStorageDifficulty(difficulty),
			Moves:       halfMoves,
			Duration:    time.Since(start),
		})
		if err != nil {
			log.Printf("recording game: %v", err)
		}
	}
}

// playerMove parses and applies one human move, prompting for the promotion
// piece when a pawn reaches the back rank.
func playerMove(board *chess.Board, scanner *bufio.Scanner, input string) error {
	if len(input) != 4 {
		return fmt.Errorf("enter moves as \"e2e4\"")
	}
	from, err := chess.ParsePosition(input[:2])
	if err != nil {
		return err
	}
	to, err := chess.ParsePosition(input[2:])
	if err != nil {
		return err
	}
	piece := board.PieceAt(from)
	if piece == nil {
		return fmt.Errorf("no piece on %s", from)
	}
	if _, err := board.MovePiece(piece, to); err != nil {
		return err
	}

	for board.PendingPromotion() != nil {
		fmt.Print("promote to (q/r/b/n): ")
		if !scanner.Scan() {
			return board.Promote(chess.Queen)
		}
		var choice chess.PieceType
		switch strings.TrimSpace(scanner.Text()) {
		case "q", "":
			choice = chess.Queen
		case "r":
			choice = chess.Rook
		case "b":
			choice = chess.Bishop
		case "n":
			choice = chess.Knight
		default:
			continue
		}
		if err := board.Promote(choice); err != nil {
			return err
		}
	}
	return nil
}

// showMoves prints the legal destinations of the piece on the given square.
func showMoves(board *chess.Board, square string) {
	pos, err := chess.ParsePosition(strings.TrimSpace(square))
	if err != nil {
		fmt.Println(err)
		return
	}
	piece := board.PieceAt(pos)
	if piece == nil {
		fmt.Printf("no piece on %s\n", pos)
		return
	}
	moves := board.LegalMoves(piece)
	if len(moves) == 0 {
		fmt.Printf("%s has no legal moves\n", piece)
		return
	}
	parts := make([]string, len(moves))
	for i, to := range moves {
		parts[i] = to.String()
	}
	fmt.Printf("%s: %s\n", piece, strings.Join(parts, " "))
}

func resolveDifficulty(flagValue string, stored storage.Difficulty) engine.Difficulty {
	switch flagValue {
	case "easy":
		return engine.Easy
	case "medium":
		return engine.Medium
	case "hard":
		return engine.Hard
	}
	switch stored {
	case storage.DifficultyEasy:
		return engine.Easy
	case storage.DifficultyHard:
		return engine.Hard
	default:
		return engine.Medium
	}
}

func toStorageDifficulty(d engine.Difficulty) storage.Difficulty {
	switch d {
	case engine.Easy:
		return storage.DifficultyEasy
	case engine.Hard:
		return storage.DifficultyHard
	default:
		return storage.DifficultyMedium
	}
}

func resolveColor(flagValue string, stored storage.PlayerColor) chess.Color {
	switch flagValue {
	case "white":
		return chess.White
	case "black":
		return chess.Black
	}
	if stored == storage.ColorBlack {
		return chess.Black
	}
	return chess.White
}
