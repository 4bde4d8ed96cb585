package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"auto_blogger_publisher/config"
	"auto_blogger_publisher/illustrator"
	"auto_blogger_publisher/normalizer"
	"auto_blogger_publisher/publisher"
	"auto_blogger_publisher/server"
	"auto_blogger_publisher/summarizer"
)

func main() {
	serve := flag.Bool("serve", false, "start web server")
	addr := flag.String("addr", "", "http listen address when --serve (overrides SERVER_ADDR)")
	text := flag.String("text", "", "raw text to process (one-shot mode)")
	link := flag.String("link", "", "article URL to process (one-shot mode)")
	voice := flag.String("voice", "", "audio URL to process (one-shot mode)")
	publish := flag.Bool("publish", false, "publish the result to Blogger (one-shot mode)")
	verbose := flag.Bool("v", false, "enable debug logs")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Local convenience; the environment wins over .env.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	norm, summ, illus, pub, err := buildPipeline(cfg, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *serve {
		srv, err := server.New(norm, summ, illus, pub, logger)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		listen := cfg.ServerAddr
		if *addr != "" {
			listen = *addr
		}
		logger.Info("starting web server", "addr", listen)
		if err := http.ListenAndServe(listen, srv.Routes()); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	sub, err := oneShotSubmission(*text, *link, *voice)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(1)
	}

	if err := runOnce(context.Background(), sub, *publish, norm, summ, illus, pub); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildPipeline(cfg config.Config, logger *slog.Logger) (*normalizer.Normalizer, *summarizer.Summarizer, *illustrator.OpenAIGenerator, *publisher.Publisher, error) {
	transcriber := normalizer.NewWhisperTranscriber(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL)
	norm := normalizer.New(nil, transcriber, logger)

	llm, err := summarizer.NewOpenAILLM(&summarizer.LLMSettings{
		Model:   cfg.ChatModel,
		APIKey:  cfg.OpenAIAPIKey,
		BaseURL: cfg.OpenAIBaseURL,
	})
	if err != nil {
		return nil, nil, nil, nil, err
	}
	summ, err := summarizer.New(llm, logger)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	illus, err := illustrator.NewOpenAIGenerator(cfg.ImageModel, cfg.OpenAIAPIKey, cfg.OpenAIBaseURL)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	pub := publisher.New(publisher.Credentials{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RefreshToken: cfg.GoogleRefreshToken,
		BlogID:       cfg.BloggerBlogID,
	}, nil, logger)

	return norm, summ, illus, pub, nil
}

func oneShotSubmission(text, link, voice string) (normalizer.Submission, error) {
	switch {
	case text != "":
		return normalizer.Submission{Kind: normalizer.KindText, Payload: text}, nil
	case link != "":
		return normalizer.Submission{Kind: normalizer.KindLink, Payload: link}, nil
	case voice != "":
		return normalizer.Submission{Kind: normalizer.KindVoice, Payload: voice}, nil
	default:
		return normalizer.Submission{}, fmt.Errorf("one of --serve, --text, --link or --voice is required")
	}
}

func runOnce(ctx context.Context, sub normalizer.Submission, publish bool, norm *normalizer.Normalizer, summ *summarizer.Summarizer, illus *illustrator.OpenAIGenerator, pub *publisher.Publisher) error {
	content, err := norm.Normalize(ctx, sub)
	if err != nil {
		return err
	}

	summary, err := summ.Summarize(ctx, content)
	if err != nil {
		return err
	}

	image, err := illus.Generate(ctx, summary.Title)
	if err != nil {
		return err
	}

	fmt.Println("title:", summary.Title)
	fmt.Println("html:", summary.HTML)
	fmt.Printf("image: %s (%d base64 chars)\n", image.MIME, len(image.B64))

	if publish {
		post, err := pub.Publish(ctx, summary.Title, summary.HTML)
		if err != nil {
			return err
		}
		fmt.Println("post:", post.URL)
	}
	return nil
}
