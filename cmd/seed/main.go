// Package main provides a tool to seed the database with demo portal data.
//
// This creates demo accounts, notices, communities, and projects so the
// portal has something to show during local development. It can also
// validate a catalog CSV export before it is wired up as a source.
//
// Usage:
//
//	DB_PATH=~/campus/db go run ./cmd/seed
//	DB_PATH=~/campus/db go run ./cmd/seed --domain=student.example.edu
//	go run ./cmd/seed --check-catalog=exports/quimica.csv --skip-lines=1
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/campushub/campus-server/internal/catalog"
	"github.com/campushub/campus-server/internal/domain"
	"github.com/campushub/campus-server/internal/id"
	"github.com/campushub/campus-server/internal/store"
)

var (
	emailDomain  = flag.String("domain", "example.edu", "Email domain for demo accounts")
	checkCatalog = flag.String("check-catalog", "", "Parse a catalog CSV file and report what it yields, then exit")
	skipLines    = flag.Int("skip-lines", 1, "Banner lines before the header row (with --check-catalog)")
)

func main() {
	flag.Parse()

	if *checkCatalog != "" {
		checkCatalogFile(*checkCatalog, *skipLines)
		return
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = os.ExpandEnv("$HOME/campus/db")
	}

	fmt.Printf("Opening database at: %s\n", dbPath)

	s, err := store.New(dbPath, nil)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()

	users := seedUsers(ctx, s)
	seedNotices(ctx, s, users)
	seedCommunities(ctx, s, users)
	seedProjects(ctx, s, users)

	fmt.Println("\nDone.")
}

// checkCatalogFile parses a CSV export the same way the server would and
// reports what came out, so a bad export is caught before deployment.
func checkCatalogFile(path string, skip int) {
	raw, err := os.ReadFile(path) //#nosec G304 -- operator-supplied path
	if err != nil {
		log.Fatalf("Failed to read catalog file: %v", err)
	}

	items := catalog.Parse(string(raw), "check", catalog.ParseOptions{SkipLines: skip})
	fmt.Printf("%s: %d items\n", path, len(items))

	unknownAuthors := 0
	loaned := 0
	subjects := map[string]int{}
	for _, item := range items {
		if item.Author == catalog.UnknownAuthor {
			unknownAuthors++
		}
		if item.Status == domain.StatusLoaned {
			loaned++
		}
		for _, s := range item.Subjects {
			subjects[s]++
		}
	}

	fmt.Printf("  loaned: %d\n", loaned)
	fmt.Printf("  unknown authors: %d\n", unknownAuthors)
	fmt.Printf("  distinct subjects: %d\n", len(subjects))

	if len(items) == 0 {
		fmt.Println("  WARNING: no items parsed; check --skip-lines and the delimiter")
		os.Exit(1)
	}
}

type demoUser struct {
	name  string
	email string
	admin bool
}

func seedUsers(ctx context.Context, s *store.Store) []demoUser {
	demo := []demoUser{
		{name: "Ana García", email: "ana@" + *emailDomain},
		{name: "Luis Fernández", email: "luis@" + *emailDomain},
		{name: "Marta Ruiz", email: "marta@" + *emailDomain},
		{name: "Dean Ortega", email: "dean@" + *emailDomain, admin: true},
	}

	for _, d := range demo {
		email := domain.NormalizeEmail(d.email)
		if _, err := s.Users.GetByIndex(ctx, "email", email); err == nil {
			fmt.Printf("User exists, skipping: %s\n", email)
			continue
		}

		userID, err := id.Generate("user")
		if err != nil {
			log.Fatalf("Failed to generate user ID: %v", err)
		}
		if err := s.Users.Create(ctx, userID, domain.NewUser(userID, email, d.name, d.admin)); err != nil {
			log.Fatalf("Failed to create user %s: %v", email, err)
		}
		fmt.Printf("Created user: %s (%s)\n", d.name, email)
	}

	return demo
}

func seedNotices(ctx context.Context, s *store.Store, users []demoUser) {
	notices := []struct {
		title, body string
		author      demoUser
	}{
		{
			title:  "Library opening hours extended during exams",
			body:   "The library stays open until midnight from Monday. Bring your student card.",
			author: users[3],
		},
		{
			title:  "Robotics workshop signups open",
			body:   "Limited seats for the weekend robotics workshop. Sign up at the lab.",
			author: users[0],
		},
		{
			title:  "Lost calculator in room B-204",
			body:   "A scientific calculator was left behind after the analysis lecture.",
			author: users[1],
		},
	}

	for _, n := range notices {
		noticeID, err := id.Generate("notice")
		if err != nil {
			log.Fatalf("Failed to generate notice ID: %v", err)
		}
		notice := domain.NewNotice(noticeID, n.title, n.body, domain.NormalizeEmail(n.author.email), n.author.name)
		if err := s.Notices.Create(ctx, noticeID, notice); err != nil {
			log.Fatalf("Failed to create notice: %v", err)
		}
		fmt.Printf("Created notice: %s\n", n.title)
	}
}

func seedCommunities(ctx context.Context, s *store.Store, users []demoUser) {
	groups := []struct {
		name, description string
		kind              domain.CommunityKind
		owner             demoUser
	}{
		{name: "Robotics Club", kind: domain.KindClub, description: "We build and break robots.", owner: users[0]},
		{name: "Film Society", kind: domain.KindCommunity, description: "Weekly screenings and debates.", owner: users[1]},
		{name: "Spring Hackathon", kind: domain.KindCompetition, description: "48 hours, one prototype.", owner: users[2]},
	}

	for _, g := range groups {
		if _, err := s.Communities.GetByIndex(ctx, "name", g.name); err == nil {
			fmt.Printf("Community exists, skipping: %s\n", g.name)
			continue
		}

		communityID, err := id.Generate("comm")
		if err != nil {
			log.Fatalf("Failed to generate community ID: %v", err)
		}
		c := domain.NewCommunity(communityID, g.name, g.kind, g.description, domain.NormalizeEmail(g.owner.email))
		if err := s.Communities.Create(ctx, communityID, c); err != nil {
			log.Fatalf("Failed to create community %s: %v", g.name, err)
		}
		fmt.Printf("Created %s: %s\n", g.kind, g.name)
	}
}

func seedProjects(ctx context.Context, s *store.Store, users []demoUser) {
	projects := []struct {
		title, summary, link string
		tags                 []string
		owner                demoUser
	}{
		{
			title:   "Campus air quality monitor",
			summary: "A network of low-cost sensors reporting PM2.5 across campus.",
			tags:    []string{"iot", "sensors"},
			owner:   users[0],
		},
		{
			title:   "Exam archive scraper",
			summary: "Collects past exam papers into a searchable archive.",
			tags:    []string{"tooling"},
			link:    "https://git.example.edu/luis/exam-archive",
			owner:   users[1],
		},
	}

	for _, p := range projects {
		projectID, err := id.Generate("proj")
		if err != nil {
			log.Fatalf("Failed to generate project ID: %v", err)
		}
		proj := domain.NewProject(projectID, p.title, p.summary, domain.NormalizeEmail(p.owner.email), p.tags, p.link)
		if err := s.Projects.Create(ctx, projectID, proj); err != nil {
			log.Fatalf("Failed to create project %s: %v", p.title, err)
		}
		fmt.Printf("Created project: %s\n", p.title)
	}
}
