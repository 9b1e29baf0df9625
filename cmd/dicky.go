package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"

	"github.com/nicholasngai/dicky/internal/bot"
	"github.com/nicholasngai/dicky/internal/config"
	"github.com/nicholasngai/dicky/internal/dictionary"
	"github.com/nicholasngai/dicky/internal/wordchain"
)

var log = logrus.New()

func main() {
	var err error

	var authToken, configPath string
	var register bool
	flag.StringVar(&authToken, "auth", "", "Authentication token for the Discord bot (overrides DISCORD_TOKEN)")
	flag.StringVar(&configPath, "config", "", "Optional YAML configuration file")
	flag.BoolVar(&register, "register", false, "Register the slash commands and exit")
	flag.Parse()

	conf, err := config.Load(configPath)
	if err != nil {
		log.Fatalln("Error loading configuration:", err)
	}
	if authToken == "" {
		authToken = conf.Token
	}
	if authToken == "" {
		flag.Usage()
		os.Exit(1)
	}
	setupLogger(conf)

	// Construct session.
	s, err := discordgo.New("Bot " + authToken)
	if err != nil {
		log.Fatalln("Error creating discordgo instance:", err)
	}

	if register {
		commands, err := bot.RegisterCommands(s, conf.ClientID, conf.GuildID)
		if err != nil {
			log.Fatalln("Error registering commands:", err)
		}
		for _, c := range commands {
			log.WithField("command", c.Name).Infoln("Registered /" + c.Name + " - " + c.Description)
		}
		return
	}

	dict := newDictionary(conf)
	manager := wordchain.NewManager(log, wordchain.NewRegistry(), dict, wordchain.Settings{
		JoinWindow:   conf.Game.JoinWindow,
		GameDuration: conf.Game.Duration,
		TurnDuration: conf.Game.TurnDuration,
		CleanupDelay: conf.Game.CleanupDelay,
	})
	manager.SetNotifier(bot.NewNotifier(log, s))
	defer manager.Shutdown()

	// Add handlers.
	b := bot.New(log, dict, manager, conf.Prefix)
	for _, h := range b.Handlers() {
		s.AddHandler(h)
	}
	s.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages | discordgo.IntentMessageContent

	// Connect to Discord.
	err = s.Open()
	if err != nil {
		log.Fatalln("Error connecting to Discord:", err)
	}
	defer s.Close()
	if err = s.UpdateWatchStatus(0, "/help for commands"); err != nil {
		log.Warnln("Error setting status:", err)
	}
	log.Println("Bot started successfully")

	// Wait for interrupt.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("Terminating gracefully")
}

func setupLogger(conf *config.Config) {
	level, err := logrus.ParseLevel(conf.LogLevel)
	if err != nil {
		log.Warnln("Unknown log level, using info:", conf.LogLevel)
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if conf.LogFormat == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
}

func newDictionary(conf *config.Config) *dictionary.Client {
	httpClient := &http.Client{Timeout: conf.Dictionary.Timeout}
	opts := []dictionary.Option{
		dictionary.WithBaseURL(conf.Dictionary.URL),
		dictionary.WithHTTPClient(httpClient),
	}

	if conf.Dictionary.WordsAPIKey != "" {
		opts = append(opts, dictionary.WithRelatedProvider(
			dictionary.NewWordsAPI(conf.Dictionary.WordsAPIKey, "", httpClient)))
	}

	if conf.Dictionary.RedisAddr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		conn, err := dictionary.ConnectRedis(ctx, conf.Dictionary.RedisAddr)
		if err != nil {
			log.Warnln("Dictionary cache disabled:", err)
		} else {
			opts = append(opts, dictionary.WithCache(dictionary.NewRedisCache(conn, conf.Dictionary.CacheTTL)))
		}
	}

	return dictionary.New(log, opts...)
}
