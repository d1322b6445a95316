// Command hash-generator prints a bcrypt digest for a password, for seeding
// accounts directly in the database.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/phrazzld/task-api/internal/service/auth"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	password := flag.String("password", "", "password to hash (read from stdin when empty)")
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost factor")
	flag.Parse()

	if err := run(os.Stdin, os.Stdout, *password, *cost); err != nil {
		fmt.Fprintf(os.Stderr, "hash-generator: %v\n", err)
		os.Exit(1)
	}
}

func run(in io.Reader, out io.Writer, password string, cost int) error {
	if password == "" {
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && err != io.EOF {
			return fmt.Errorf("failed to read password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}
	if password == "" {
		return fmt.Errorf("password is required")
	}

	hasher, err := auth.NewBcryptHasher(cost)
	if err != nil {
		return err
	}

	hash, err := hasher.Hash(password)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, hash)
	return err
}
