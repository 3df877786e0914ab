// Package main provides localization for the vidutil CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Flag categories
		"Configuration": "設定",
		"Logging":       "ログ",
		"Tools":         "ツール",
		"Output":        "出力先",
		"Transform":     "変換",

		// Root command
		"Load, save and merge video frame sequences": "動画フレーム列の読み込み・保存・結合",

		// Global flags
		"YAML configuration file":              "YAML設定ファイル",
		"Log level (debug, info, warn, error)": "ログレベル（debug, info, warn, error）",
		"Suppress all log output":              "全てのログ出力を抑制",
		"Path to the ffmpeg executable":        "ffmpeg実行ファイルのパス",
		"Decode/encode engine (ffmpeg, gocv)":  "デコード/エンコードエンジン（ffmpeg, gocv）",

		// Version command
		"Show version information": "バージョン情報を表示",
		"vidutil version %s":       "vidutil バージョン %s",

		// Probe command
		"Show frame rate and frame count of a video": "動画のフレームレートとフレーム数を表示",
		"File: %s":    "ファイル: %s",
		"Size: %dx%d": "サイズ: %dx%d",
		"Codec: %s":   "コーデック: %s",
		"FPS: %.3f":   "FPS: %.3f",
		"Frames: %d":  "フレーム数: %d",

		// List command
		"List the still images of a directory in sequence order": "ディレクトリ内の静止画を順番に一覧表示",
		"Extension to include, repeatable (e.g. .png)":           "対象とする拡張子（複数指定可、例: .png）",

		// Transcode command
		"Decode a video or image directory and encode it again":        "動画または画像ディレクトリをデコードして再エンコード",
		"Output file path (required)":                                  "出力ファイルパス（必須）",
		"Four-character code, -1 to list encoders, 0 for still images": "4文字コード（-1 でエンコーダ一覧、0 で静止画）",
		"Output frame rate (default: source frame rate)":               "出力フレームレート（デフォルト: 入力のフレームレート）",
		"Resize to this width":                                         "この幅にリサイズ",
		"Resize to this height":                                        "この高さにリサイズ",
		"Draw the frame number onto each frame":                        "各フレームにフレーム番号を描画",
		"Encoding":                                                     "エンコード中",

		// Merge command
		"Combine an audio track and a video track": "音声トラックと動画トラックを結合",
		"Audio source file":                        "音声ファイル",
		"Video source file":                        "動画ファイル",

		// Export command
		"Encode still images matching a pattern into a video": "パターンに一致する静止画を動画にエンコード",
		"Input frame rate":                           "入力フレームレート",
		"ffmpeg pattern type (glob, sequence, none)": "ffmpeg のパターン種別（glob, sequence, none）",

		// Runtime messages
		"Interrupted, shutting down...":            "中断されました。シャットダウン中...",
		"engine %q is not available in this build": "エンジン %q はこのビルドでは利用できません",
		"usage: vidutil %s %s":                     "使い方: vidutil %s %s",
	})
}
