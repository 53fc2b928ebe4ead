// Package main is careerctl, a terminal client for the OrbitAI API. It
// drives the client package the same way the web frontend drives the HTTP
// API: session persisted under the user config dir, bearer auth, global
// logout on any 401.
//
// Usage:
//
//	careerctl register -email you@example.com -password secret
//	careerctl login    -email you@example.com -password secret
//	careerctl profile                         # show the stored profile
//	careerctl profile -name "Alice" -cv cv.pdf
//	careerctl analyze
//	careerctl search -career "Data Engineer"
//	careerctl history
//	careerctl logout
//
// The API base URL defaults to http://localhost:8080 and can be overridden
// with ORBITAI_URL.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/Renan-Hawladar/OrbitAI/client"
	"github.com/Renan-Hawladar/OrbitAI/internal/model"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	sessionPath, err := client.DefaultSessionPath()
	if err != nil {
		fatal(err)
	}
	sessions := client.NewSessionManager(client.NewFileStore(sessionPath))
	sessions.Hydrate()

	baseURL := os.Getenv("ORBITAI_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	api := client.New(baseURL, sessions)
	api.OnSessionExpired = func() {
		fmt.Fprintln(os.Stderr, "session expired, please log in again")
	}

	ctx := context.Background()

	switch os.Args[1] {
	case "register":
		err = runAuth(ctx, api.Register, os.Args[2:])
	case "login":
		err = runAuth(ctx, api.Login, os.Args[2:])
	case "logout":
		sessions.Logout()
		fmt.Println("logged out")
	case "profile":
		err = runProfile(ctx, api, os.Args[2:])
	case "analyze":
		err = runAnalyze(ctx, api)
	case "search":
		err = runSearch(ctx, api, os.Args[2:])
	case "history":
		err = runHistory(ctx, api)
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		fatal(err)
	}
}

func runAuth(ctx context.Context, call func(context.Context, string, string) error, args []string) error {
	fs := flag.NewFlagSet("auth", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	fs.Parse(args)

	if *email == "" || *password == "" {
		return errors.New("both -email and -password are required")
	}

	if err := call(ctx, *email, *password); err != nil {
		return err
	}
	fmt.Printf("logged in as %s\n", *email)
	return nil
}

func runProfile(ctx context.Context, api *client.Client, args []string) error {
	fs := flag.NewFlagSet("profile", flag.ExitOnError)
	name := fs.String("name", "", "full name")
	degree := fs.String("degree", "", "degree")
	qualifications := fs.String("qualifications", "", "qualifications")
	skills := fs.String("skills", "", "skills, comma separated")
	photoPath := fs.String("photo", "", "path to a profile photo")
	cvPath := fs.String("cv", "", "path to a CV (PDF)")
	fs.Parse(args)

	// With no edit flags this is a read.
	touched := false
	fs.Visit(func(*flag.Flag) { touched = true })
	if !touched {
		profile, err := api.GetProfile(ctx)
		if err != nil {
			return err
		}
		printProfile(profile)
		return nil
	}

	form := client.NewProfileForm()
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			form.SetName(*name)
		case "degree":
			form.SetDegree(*degree)
		case "qualifications":
			form.SetQualifications(*qualifications)
		case "skills":
			form.SetSkills(*skills)
		}
	})

	if *photoPath != "" {
		data, err := os.ReadFile(*photoPath)
		if err != nil {
			return fmt.Errorf("reading photo: %w", err)
		}
		if err := form.SetPhoto(*photoPath, data); err != nil {
			return err
		}
	}
	if *cvPath != "" {
		data, err := os.ReadFile(*cvPath)
		if err != nil {
			return fmt.Errorf("reading CV: %w", err)
		}
		if err := form.SetCV(*cvPath, data); err != nil {
			return err
		}
	}

	profile, err := api.UpdateProfile(ctx, form)
	if err != nil {
		return err
	}
	fmt.Println("profile saved")
	printProfile(profile)
	return nil
}

func runAnalyze(ctx context.Context, api *client.Client) error {
	fmt.Println("analyzing your profile, this can take a minute...")
	paths, err := client.NewRequester(api).Analyze(ctx)
	if err != nil {
		return err
	}
	printPaths(paths)
	return nil
}

func runSearch(ctx context.Context, api *client.Client, args []string) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	career := fs.String("career", "", "career to evaluate, e.g. \"Data Engineer\"")
	fs.Parse(args)

	paths, err := client.NewRequester(api).Search(ctx, *career)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		fmt.Println("no recommendation for that career based on your profile")
		return nil
	}
	printPaths(paths)
	return nil
}

func runHistory(ctx context.Context, api *client.Client) error {
	analyses, err := api.History(ctx)
	if err != nil {
		return err
	}
	if len(analyses) == 0 {
		fmt.Println("no analyses yet — run `careerctl analyze` first")
		return nil
	}
	for _, a := range analyses {
		fmt.Printf("%s — %d path(s)\n", a.CreatedAt.Format("2006-01-02 15:04"), len(a.CareerPaths))
		for _, p := range a.CareerPaths {
			fmt.Printf("  - %s\n", p.CareerPath)
		}
	}
	return nil
}

func printProfile(p *model.Profile) {
	fmt.Printf("name:           %s\n", orDash(p.Name))
	fmt.Printf("degree:         %s\n", orDash(p.Degree))
	fmt.Printf("qualifications: %s\n", orDash(p.Qualifications))
	fmt.Printf("skills:         %s\n", orDash(p.Skills))
	cv := "none"
	if p.CVText != "" {
		cv = fmt.Sprintf("uploaded (%d characters of text extracted)", len(p.CVText))
	}
	fmt.Printf("cv:             %s\n", cv)
}

func printPaths(paths []model.CareerPath) {
	for i, p := range paths {
		fmt.Printf("\n%d. %s\n", i+1, p.CareerPath)
		fmt.Printf("   why: %s\n", p.SuitabilityReason)
		if len(p.RequiredSkills) > 0 {
			fmt.Printf("   skills to build: %s\n", strings.Join(p.RequiredSkills, ", "))
		}
		for _, step := range p.Roadmap {
			fmt.Printf("   %d) %s — %s\n", step.Step, step.Action, step.Details)
		}
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: careerctl <command> [flags]

commands:
  register   create an account (-email, -password)
  login      log in (-email, -password)
  logout     clear the stored session
  profile    show or edit your profile (-name, -degree, -qualifications, -skills, -photo, -cv)
  analyze    generate career recommendations from your profile
  search     evaluate a specific career (-career)
  history    list past analyses`)
}
