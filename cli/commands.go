package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/google/uuid"

	"github.com/keepgo/keepgo/passgen"
	"github.com/keepgo/keepgo/vault"
)

// RunCommands drives the interactive command loop over one unlocked
// session. Every mutation persists through the store's atomic write.
func RunCommands(s *vault.Session, st *vault.Store) {
	reader := bufio.NewReader(os.Stdin)
	var idMap map[int]uuid.UUID

	for {
		fmt.Println("\nCommands: a=add, l=list, s N=show, c N=copy, d N=delete, g=generate, q=quit")
		fmt.Print("> ")

		line, _ := reader.ReadString('\n')
		parts := strings.Fields(strings.TrimSpace(line))
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "a":
			handleAdd(s, st, reader)
			idMap = nil
		case "l":
			idMap = handleList(s)
		case "g":
			handleGenerate()
		case "s", "c", "d":
			if len(parts) < 2 {
				fmt.Println("Specify item number")
				continue
			}
			var num int
			fmt.Sscanf(parts[1], "%d", &num)
			id, ok := idMap[num]
			if !ok {
				fmt.Println("Invalid item number")
				continue
			}
			switch cmd {
			case "s":
				handleShow(s, id)
			case "c":
				handleCopy(s, id)
			case "d":
				handleDelete(s, st, id)
			}
		case "q":
			fmt.Println("Exiting.")
			return
		default:
			fmt.Println("Unknown command")
		}
	}
}

func save(s *vault.Session, st *vault.Store) error {
	raw, err := s.Persist()
	if err != nil {
		return err
	}
	return st.WriteAtomic(raw)
}

func readLine(reader *bufio.Reader, prompt string) string {
	fmt.Print(prompt)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func handleAdd(s *vault.Session, st *vault.Store, reader *bufio.Reader) {
	title := readLine(reader, "Title: ")
	username := readLine(reader, "Username: ")
	password := ReadPasswordMasked("Password: ")
	url := readLine(reader, "URL (optional): ")
	notes := readLine(reader, "Notes (optional): ")

	analysis := passgen.NewAnalyzer().Analyze(string(password))
	fmt.Printf("Password strength: %s (%d/100)\n", analysis.Strength, analysis.Score)

	if _, err := s.Add(vault.NewEntry(title, username, password, url, notes)); err != nil {
		fmt.Println("Error adding entry:", err)
		return
	}
	if err := save(s, st); err != nil {
		fmt.Println("Error saving vault:", err)
	} else {
		fmt.Println("Entry added!")
	}
}

func handleList(s *vault.Session) map[int]uuid.UUID {
	entries, err := s.List()
	if err != nil {
		fmt.Println("Error:", err)
		return nil
	}
	fmt.Println("Vault entries:")
	idMap := make(map[int]uuid.UUID)
	for i, e := range entries {
		num := i + 1
		idMap[num] = e.ID
		fmt.Printf("%d) Title: %s | Username: %s\n", num, e.Title, e.Username)
	}
	return idMap
}

func handleShow(s *vault.Session, id uuid.UUID) {
	e, err := s.Get(id)
	if err != nil {
		fmt.Println("Entry not found")
		return
	}
	fmt.Printf("Title: %s\nUsername: %s\nPassword: %s\nURL: %s\nNotes: %s\nCreated: %s\nModified: %s\n",
		e.Title, e.Username, string(e.Password), e.URL, e.Notes,
		e.CreatedAt.Format(time.RFC3339), e.UpdatedAt.Format(time.RFC3339))
}

func handleCopy(s *vault.Session, id uuid.UUID) {
	e, err := s.Get(id)
	if err != nil {
		fmt.Println("Entry not found")
		return
	}
	clipboard.WriteAll(string(e.Password))
	fmt.Println("Password copied to clipboard. Clearing in 30 seconds...")
	time.AfterFunc(30*time.Second, func() {
		clipboard.WriteAll("")
	})
}

func handleDelete(s *vault.Session, st *vault.Store, id uuid.UUID) {
	if err := s.Delete(id); err != nil {
		fmt.Println("Error deleting entry:", err)
		return
	}
	if err := save(s, st); err != nil {
		fmt.Println("Error saving vault:", err)
	} else {
		fmt.Println("Entry deleted!")
	}
}

func handleGenerate() {
	password, err := passgen.New().GenerateComplex()
	if err != nil {
		fmt.Println("Error generating password:", err)
		return
	}
	fmt.Println(password)
	analysis := passgen.NewAnalyzer().Analyze(password)
	fmt.Printf("Strength: %s (%d/100)\n", analysis.Strength, analysis.Score)
}
