package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sort"

	"github.com/fadilmartias/datapulse/internal/config"
	"github.com/fadilmartias/datapulse/internal/repository"
	"github.com/fadilmartias/datapulse/internal/service"
	"github.com/fadilmartias/datapulse/internal/usecase"
	"github.com/fadilmartias/datapulse/internal/util"
	"github.com/joho/godotenv"
)

type app struct {
	auth   *usecase.AuthUsecase
	skills *usecase.SkillAnalysisUsecase
	tokens repository.TokenRepository
	// account is the keyring account the token is stored under.
	account string
}

type command struct {
	usage string
	run   func(ctx context.Context, a *app, args []string) error
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"register":        {"register -name NAME -email EMAIL -password PASS [-role user|admin|manager]", runRegister},
		"login":           {"login -email EMAIL -password PASS", runLogin},
		"logout":          {"logout", runLogout},
		"forgot-password": {"forgot-password -email EMAIL", runForgotPassword},
		"reset-password":  {"reset-password -token TOKEN -password NEWPASS", runResetPassword},
		"jds":             {"jds", runListJDs},
		"upload-jd":       {"upload-jd [-title TITLE] FILE", runUploadJD},
		"cvs":             {"cvs", runListCVs},
		"upload-cvs":      {"upload-cvs [-level jr|mid|sr] FILE...", runUploadCVs},
		"analyze":         {"analyze -jd JD_ID | -id ANALYSIS_ID", runAnalyze},
		"chats":           {"chats -jd JD_ID -cv CV_ID", runListChats},
		"chat":            {"chat -jd JD_ID -cv CV_ID [-conversation ID] MESSAGE", runChat},
		"delete-chat":     {"delete-chat CONVERSATION_ID", runDeleteChat},
	}
}

func usage() {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintln(os.Stderr, "usage: datapulse <command> [flags]")
	for _, name := range names {
		fmt.Fprintf(os.Stderr, "  %s\n", commands[name].usage)
	}
}

func main() {
	log.SetFlags(0)
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	cmd, ok := commands[os.Args[1]]
	if !ok {
		usage()
		os.Exit(2)
	}

	apiConfig := config.LoadAPIConfig()
	sessionConfig := config.LoadSessionConfig()

	tokens := repository.NewKeyringTokenRepository(sessionConfig.KeyringService)
	api := service.NewDataPulseService(apiConfig.BaseURL, apiConfig.Timeout, service.NewSessionTokenProvider(tokens))
	a := &app{
		auth:    usecase.NewAuthUsecase(api, tokens),
		skills:  usecase.NewSkillAnalysisUsecase(api, apiConfig.UploadRatePerSec),
		tokens:  tokens,
		account: sessionConfig.KeyringAccount,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = util.WithSessionID(ctx, a.account)

	if err := cmd.run(ctx, a, os.Args[2:]); err != nil {
		log.Fatal(err)
	}
}
