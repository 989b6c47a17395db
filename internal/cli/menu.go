package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/isdelr/movie-catalog-be/internal/models"
	"golang.org/x/term"
)

const menuText = `
--- Movie API menu ---
1. Register a new user
2. Log in
3. Find a movie by title
4. List movies by year
5. List movies by genre
6. Add a movie
7. Update a movie
8. Delete a movie
9. Exit`

// PasswordReader reads a secret after showing prompt.
type PasswordReader func(prompt string) (string, error)

// Menu is the interactive loop driving a Client.
type Menu struct {
	client       *Client
	in           *bufio.Reader
	out          io.Writer
	readPassword PasswordReader
	timeout      time.Duration
}

// NewMenu creates a Menu reading from in and writing to out. When readPassword
// is nil, passwords are read as plain lines from in.
func NewMenu(client *Client, in io.Reader, out io.Writer, readPassword PasswordReader) *Menu {
	m := &Menu{client: client, in: bufio.NewReader(in), out: out, timeout: 30 * time.Second}
	if readPassword == nil {
		readPassword = m.prompt
	}
	m.readPassword = readPassword
	return m
}

// TerminalPasswordReader reads without echo when stdin is a terminal.
// It returns nil otherwise so the menu falls back to line input.
func TerminalPasswordReader(out io.Writer) PasswordReader {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil
	}
	return func(prompt string) (string, error) {
		fmt.Fprint(out, prompt)
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(out)
		return string(b), err
	}
}

// Run loops until the user exits or input ends.
func (m *Menu) Run(ctx context.Context) error {
	for {
		fmt.Fprintln(m.out, menuText)
		choice, err := m.prompt("Choose an option: ")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if choice == "9" {
			return nil
		}
		if err := m.dispatch(ctx, choice); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			fmt.Fprintln(m.out, "Error:", err)
		}
	}
}

func (m *Menu) dispatch(ctx context.Context, choice string) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	switch choice {
	case "1":
		return m.register(ctx)
	case "2":
		return m.login(ctx)
	case "3":
		return m.byTitle(ctx)
	case "4":
		return m.byYear(ctx)
	case "5":
		return m.byGenre(ctx)
	case "6":
		return m.add(ctx)
	case "7":
		return m.update(ctx)
	case "8":
		return m.remove(ctx)
	default:
		fmt.Fprintln(m.out, "Invalid option, please try again")
		return nil
	}
}

func (m *Menu) register(ctx context.Context) error {
	username, err := m.prompt("Username: ")
	if err != nil {
		return err
	}
	email, err := m.prompt("Email: ")
	if err != nil {
		return err
	}
	name, err := m.prompt("Name: ")
	if err != nil {
		return err
	}
	password, err := m.readPassword("Password: ")
	if err != nil {
		return err
	}
	if _, err := m.client.Register(ctx, username, email, name, password); err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}
	fmt.Fprintln(m.out, "User registered. You can now log in.")
	return nil
}

func (m *Menu) login(ctx context.Context) error {
	username, err := m.prompt("Username: ")
	if err != nil {
		return err
	}
	password, err := m.readPassword("Password: ")
	if err != nil {
		return err
	}
	if err := m.client.Login(ctx, username, password); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	fmt.Fprintln(m.out, "Logged in.")
	return nil
}

func (m *Menu) byTitle(ctx context.Context) error {
	title, err := m.prompt("Title: ")
	if err != nil {
		return err
	}
	movie, err := m.client.MovieByTitle(ctx, title)
	if err != nil {
		return err
	}
	return m.print(movie)
}

func (m *Menu) byYear(ctx context.Context) error {
	year, err := m.promptInt("Year: ")
	if err != nil {
		return err
	}
	movies, err := m.client.MoviesByYear(ctx, year)
	if err != nil {
		return err
	}
	return m.print(movies)
}

func (m *Menu) byGenre(ctx context.Context) error {
	genre, err := m.prompt("Genre: ")
	if err != nil {
		return err
	}
	movies, err := m.client.MoviesByGenre(ctx, genre)
	if err != nil {
		return err
	}
	return m.print(movies)
}

func (m *Menu) add(ctx context.Context) error {
	title, err := m.prompt("Title: ")
	if err != nil {
		return err
	}
	year, err := m.promptInt("Year: ")
	if err != nil {
		return err
	}
	genres, err := m.prompt("Genres (comma separated): ")
	if err != nil {
		return err
	}
	if err := m.client.AddMovie(ctx, models.Movie{Title: title, Year: year, Genres: splitGenres(genres)}); err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Movie '%s' added.\n", title)
	return nil
}

func (m *Menu) update(ctx context.Context) error {
	title, err := m.prompt("Title of the movie to update: ")
	if err != nil {
		return err
	}
	year, err := m.promptInt("New year: ")
	if err != nil {
		return err
	}
	raw, err := m.prompt("New genres (comma separated): ")
	if err != nil {
		return err
	}
	genres := splitGenres(raw)
	if err := m.client.UpdateMovie(ctx, title, models.MoviePatch{Year: &year, Genres: &genres}); err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Movie '%s' updated.\n", title)
	return nil
}

func (m *Menu) remove(ctx context.Context) error {
	title, err := m.prompt("Title of the movie to delete: ")
	if err != nil {
		return err
	}
	if err := m.client.DeleteMovie(ctx, title); err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Movie '%s' deleted.\n", title)
	return nil
}

func (m *Menu) prompt(label string) (string, error) {
	fmt.Fprint(m.out, label)
	line, err := m.in.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (m *Menu) promptInt(label string) (int, error) {
	s, err := m.prompt(label)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	return n, nil
}

func (m *Menu) print(v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(m.out, string(b))
	return nil
}

func splitGenres(s string) []string {
	var genres []string
	for _, g := range strings.Split(s, ",") {
		if g = strings.TrimSpace(g); g != "" {
			genres = append(genres, g)
		}
	}
	return genres
}
