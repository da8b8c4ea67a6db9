package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/shouni/go-text-to-speech/pkg/speech"
	"github.com/shouni/go-text-to-speech/pkg/speech/audio"
	"github.com/shouni/go-text-to-speech/pkg/speech/parser"
	"github.com/shouni/go-text-to-speech/pkg/speech/speaker"
)

// ----------------------------------------------------------------------
// 設定キー (フラグ名・設定ファイルのキーを兼ねる)
// ----------------------------------------------------------------------

const (
	keyModel     = "model"
	keyVoice     = "voice"
	keyAPIKey    = "apikey"
	keyAPIURL    = "apiurl"
	keyFormat    = "format"
	keyConcat    = "concat"
	keyTokenizer = "tokenizer"
	keyBudget    = "budget"
	keyInterval  = "interval"
	keyKeep      = "keep"
	keyDryRun    = "dry-run"
	keyVerbose   = "verbose"
	keyConfig    = "config"

	// OPENAI_* 以外の環境変数は TEXT2SPEECH_VOICE のようにプレフィックス付きで読む
	envPrefix  = "TEXT2SPEECH"
	envAPIKey  = "OPENAI_API_KEY"
	envAPIURL  = "OPENAI_BASE_URL"
	dotEnvFile = ".env"
)

// appConfig はフラグ・環境変数・設定ファイルを解決した後の CLI 設定です。
type appConfig struct {
	Model     string
	Voice     string
	APIKey    string
	APIURL    string
	Format    string
	Concat    string
	Tokenizer string
	Budget    int
	Interval  time.Duration
	Keep      bool
	DryRun    bool
	Verbose   bool
}

// registerFlags はルートコマンドにフラグを定義します。
func registerFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.String(keyModel, speaker.DefaultModel, fmt.Sprintf("音声合成モデル (%s)", strings.Join(speaker.Names(speaker.SupportedModels), "|")))
	flags.String(keyVoice, speaker.DefaultVoice, fmt.Sprintf("ボイス (%s)", strings.Join(speaker.Names(speaker.SupportedVoices), "|")))
	flags.String(keyAPIKey, "", "APIキー (未指定の場合は "+envAPIKey+")")
	flags.String(keyAPIURL, "", "APIのベースURL (未指定の場合は "+envAPIURL+")")
	flags.String(keyFormat, speaker.DefaultFormat, fmt.Sprintf("出力フォーマット (%s)", strings.Join(speaker.Names(speaker.SupportedFormats), "|")))
	flags.String(keyConcat, audio.StrategyDemuxer, fmt.Sprintf("結合方式 (%s|%s|%s)", audio.StrategyDemuxer, audio.StrategyFilter, audio.StrategyWAV))
	flags.String(keyTokenizer, parser.TokenizerCL100K, fmt.Sprintf("トークナイザ (%s|%s)", parser.TokenizerCL100K, parser.TokenizerBytes))
	flags.Int(keyBudget, parser.DefaultTokenBudget, "1チャンクあたりのトークン上限")
	flags.Duration(keyInterval, 0, "リクエスト間の最小間隔 (例: 500ms)")
	flags.Bool(keyKeep, false, "チャンク音声とリストファイルを削除せずに残す")
	flags.Bool(keyDryRun, false, "分割結果だけを表示し、APIを呼び出さない")
	flags.BoolP(keyVerbose, "v", false, "デバッグログを出力する")
	flags.String(keyConfig, "", "設定ファイル (yaml/json/toml)")
}

// loadConfig は flags > 環境変数 > 設定ファイル > デフォルト の優先順位で設定を解決します。
// カレントディレクトリの .env は最初に読み込まれますが、既存の環境変数は上書きしません。
func loadConfig(cmd *cobra.Command, v *viper.Viper) (appConfig, error) {
	if err := godotenv.Load(dotEnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn(".env ファイルの読み込みに失敗しました", "error", err)
	}

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return appConfig{}, fmt.Errorf("フラグのバインドに失敗しました: %w", err)
	}
	if err := v.BindEnv(keyAPIKey, envAPIKey); err != nil {
		return appConfig{}, err
	}
	if err := v.BindEnv(keyAPIURL, envAPIURL); err != nil {
		return appConfig{}, err
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path := v.GetString(keyConfig); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return appConfig{}, &speech.ErrInvalidInput{Details: "設定ファイル " + path, WrappedErr: err}
		}
		slog.Debug("設定ファイルを読み込みました", "path", v.ConfigFileUsed())
	}

	return appConfig{
		Model:     v.GetString(keyModel),
		Voice:     v.GetString(keyVoice),
		APIKey:    v.GetString(keyAPIKey),
		APIURL:    v.GetString(keyAPIURL),
		Format:    v.GetString(keyFormat),
		Concat:    v.GetString(keyConcat),
		Tokenizer: v.GetString(keyTokenizer),
		Budget:    v.GetInt(keyBudget),
		Interval:  v.GetDuration(keyInterval),
		Keep:      v.GetBool(keyKeep),
		DryRun:    v.GetBool(keyDryRun),
		Verbose:   v.GetBool(keyVerbose),
	}, nil
}

// speechConfig は Executor の組み立て用設定に変換します。
func (c appConfig) speechConfig(observer speech.Observer) speech.Config {
	return speech.Config{
		APIKey:          c.APIKey,
		APIURL:          c.APIURL,
		Model:           c.Model,
		Voice:           c.Voice,
		Format:          c.Format,
		Tokenizer:       c.Tokenizer,
		TokenBudget:     c.Budget,
		ConcatStrategy:  c.Concat,
		RequestInterval: c.Interval,
		DryRun:          c.DryRun,
		Observer:        observer,
	}
}
