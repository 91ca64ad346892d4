package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/fadilmartias/datapulse/internal/dto"
	"github.com/fadilmartias/datapulse/internal/model"
	"github.com/fadilmartias/datapulse/internal/usecase"
)

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() { fmt.Fprintf(os.Stderr, "usage: datapulse %s\n", commands[name].usage) }
	return fs
}

func runRegister(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("register")
	name := fs.String("name", "", "full name")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	role := fs.String("role", model.RoleUser, "user, admin or manager")
	if err := fs.Parse(args); err != nil {
		return err
	}
	user, err := a.auth.Register(ctx, dto.RegisterRequest{FullName: *name, Email: *email, Password: *password, Role: *role})
	if err != nil {
		return err
	}
	fmt.Printf("Welcome, %s! You can now log in.\n", orValue(user.FullName, *name))
	return nil
}

func runLogin(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("login")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	user, err := a.auth.Login(ctx, a.account, dto.LoginRequest{Email: *email, Password: *password})
	if err != nil {
		return err
	}
	fmt.Printf("Logged in as %s (%s)\n", user.FullName, user.Role)
	return nil
}

func runLogout(ctx context.Context, a *app, _ []string) error {
	if err := a.tokens.Delete(ctx, a.account); err != nil {
		return err
	}
	fmt.Println("Logged out")
	return nil
}

func runForgotPassword(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("forgot-password")
	email := fs.String("email", "", "email address")
	if err := fs.Parse(args); err != nil {
		return err
	}
	msg, err := a.auth.ForgotPassword(ctx, *email)
	if err != nil {
		return err
	}
	fmt.Println(orValue(msg, "Password reset email sent"))
	return nil
}

func runResetPassword(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("reset-password")
	token := fs.String("token", "", "reset token from the email")
	password := fs.String("password", "", "new password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	msg, err := a.auth.ResetPassword(ctx, *token, *password)
	if err != nil {
		return err
	}
	fmt.Println(orValue(msg, "Password has been reset"))
	return nil
}

// loaded returns a workspace filled from the API, failing on list errors.
func loaded(ctx context.Context, a *app) (*usecase.Workspace, error) {
	ws := usecase.NewWorkspace()
	a.skills.Load(ctx, ws)
	s := ws.State()
	if s.JD.ListError != "" {
		return nil, errors.New(s.JD.ListError)
	}
	if s.CV.Error != "" {
		return nil, errors.New(s.CV.Error)
	}
	return ws, nil
}

func runListJDs(ctx context.Context, a *app, _ []string) error {
	ws, err := loaded(ctx, a)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tUPLOADED")
	for _, jd := range ws.State().JD.List {
		fmt.Fprintf(w, "%s\t%s\t%s\n", jd.ID, jd.Title, formatTime(jd.UploadedAt))
	}
	return w.Flush()
}

func runUploadJD(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("upload-jd")
	title := fs.String("title", "", "title shown in lists")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errors.New("exactly one file is required")
	}
	f, err := os.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer f.Close()

	ws := usecase.NewWorkspace()
	a.skills.UploadJobDescription(ctx, ws, &dto.FileUpload{Name: filepath.Base(f.Name()), Reader: f}, *title)
	s := ws.State()
	if s.JD.Error != "" {
		return errors.New(s.JD.Error)
	}
	fmt.Printf("Uploaded %s as %s\n", s.JD.SelectedTitle, s.JD.SelectedID)
	return nil
}

func runListCVs(ctx context.Context, a *app, _ []string) error {
	ws, err := loaded(ctx, a)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFILE\tLEVEL\tUPLOADED")
	for _, cv := range ws.State().CV.List {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", cv.ID, cv.FileName, cv.Level, formatTime(cv.UploadedAt))
	}
	return w.Flush()
}

func runUploadCVs(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("upload-cvs")
	levelFlag := fs.String("level", string(model.LevelJunior), "seniority: jr, mid or sr")
	if err := fs.Parse(args); err != nil {
		return err
	}
	level, err := model.ParseLevel(*levelFlag)
	if err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errors.New("at least one file is required")
	}

	uploads := make([]dto.FileUpload, 0, fs.NArg())
	for _, path := range fs.Args() {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		uploads = append(uploads, dto.FileUpload{Name: filepath.Base(path), Reader: f})
	}

	ws := usecase.NewWorkspace()
	a.skills.SetResumeLevel(ws, level)
	for _, o := range a.skills.UploadResumes(ctx, ws, uploads) {
		if o.Err != nil {
			fmt.Printf("FAIL  %s\n", o.FileName)
			continue
		}
		fmt.Printf("OK    %s -> %s\n", o.FileName, o.Resume.ID)
	}
	if msg := ws.State().CV.Error; msg != "" {
		return errors.New(msg)
	}
	return nil
}

func runAnalyze(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("analyze")
	jdID := fs.String("jd", "", "job description id to score all CVs against")
	analysisID := fs.String("id", "", "show a stored analysis instead")
	if err := fs.Parse(args); err != nil {
		return err
	}
	ws, err := loaded(ctx, a)
	if err != nil {
		return err
	}

	switch {
	case *analysisID != "":
		a.skills.LoadAnalysis(ctx, ws, *analysisID)
	case *jdID != "":
		a.skills.SelectJobDescription(ctx, ws, *jdID)
		if msg := ws.State().JD.Error; msg != "" {
			return errors.New(msg)
		}
		if !a.skills.StartAnalysis(ctx, ws) {
			return errors.New("no CVs uploaded yet")
		}
	default:
		fs.Usage()
		return errors.New("-jd or -id is required")
	}

	view := ws.Snapshot()
	if view.Analysis.Error != "" {
		return errors.New(view.Analysis.Error)
	}
	r := view.Analysis.Result
	fmt.Printf("Analysis %s  %s  %s\n", r.AnalysisID, orValue(r.JDName, r.JDID), r.Status)
	if r.Notes != "" {
		fmt.Println(r.Notes)
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CV\tSCORE\tSKILLS FOUND\tMISSING")
	for _, c := range r.Candidates {
		score := "n/a"
		if c.Percent != nil {
			score = fmt.Sprintf("%d%%", *c.Percent)
		}
		if c.Error != "" {
			score = "error: " + c.Error
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", orValue(c.CandidateName, c.FileName), score,
			strings.Join(c.SkillsFound, ", "), strings.Join(c.MissingSkills, ", "))
	}
	return w.Flush()
}

// pair prepares a workspace scoped to one JD and CV for chat commands.
func pair(ctx context.Context, a *app, jdID, cvID string) (*usecase.Workspace, error) {
	if jdID == "" || cvID == "" {
		return nil, errors.New("-jd and -cv are required")
	}
	ws, err := loaded(ctx, a)
	if err != nil {
		return nil, err
	}
	a.skills.SelectJobDescription(ctx, ws, jdID)
	if msg := ws.State().JD.Error; msg != "" {
		return nil, errors.New(msg)
	}
	if err := a.skills.SelectResume(ws, cvID); err != nil {
		return nil, err
	}
	return ws, nil
}

func runListChats(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("chats")
	jdID := fs.String("jd", "", "job description id")
	cvID := fs.String("cv", "", "CV id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	ws, err := pair(ctx, a, *jdID, *cvID)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tUPDATED\tMESSAGES\tLAST")
	for _, c := range ws.State().VisibleConversations() {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", c.ID, formatTime(c.UpdatedAt), c.MessageCount, truncate(c.LastMessage, 40))
	}
	return w.Flush()
}

func runChat(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("chat")
	jdID := fs.String("jd", "", "job description id")
	cvID := fs.String("cv", "", "CV id")
	conversation := fs.String("conversation", "", "continue an existing conversation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	ws, err := pair(ctx, a, *jdID, *cvID)
	if err != nil {
		return err
	}
	if *conversation != "" {
		a.skills.SelectConversation(ctx, ws, *conversation)
		if msg := ws.State().Chat.Error; msg != "" {
			return errors.New(msg)
		}
	}
	if !a.skills.SendMessage(ctx, ws, strings.Join(fs.Args(), " ")) {
		fs.Usage()
		return errors.New("message is empty")
	}
	s := ws.State()
	if s.Chat.Error != "" {
		return errors.New(s.Chat.Error)
	}
	reply := s.Chat.Messages[len(s.Chat.Messages)-1]
	fmt.Println(reply.Content)
	fmt.Fprintf(os.Stderr, "conversation: %s\n", s.Chat.SelectedID)
	return nil
}

func runDeleteChat(ctx context.Context, a *app, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: datapulse " + commands["delete-chat"].usage)
	}
	ws := usecase.NewWorkspace()
	if !a.skills.DeleteConversation(ctx, ws, args[0]) {
		return errors.New(ws.State().Chat.Error)
	}
	fmt.Println("Conversation deleted")
	return nil
}
