package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Frame source
		"Loading file://%s":              "file://%s を読み込み中",
		"Loaded %d frames from %s":       "%s から %d フレームを読み込みました",
		"Memory usage: %s":               "メモリ使用量: %s",
		"Memory usage after release: %s": "解放後のメモリ使用量: %s",
		"Listed %d images in %s":         "%s に %d 枚の画像があります",
		"Loaded %d images":               "%d 枚の画像を読み込みました",

		// Frame sink
		"Saving %d frames to %s (%s, %.2f fps, %s)": "%d フレームを %s に保存中 (%s, %.2f fps, %s)",
		"Progress %.2f%%":          "進捗 %.2f%%",
		"Saved to file://%s":       "file://%s に保存しました",
		"Exporting %s at %.2f fps": "%s を %.2f fps で書き出し中",

		// Merge
		"No audio provided":                    "音声が指定されていません",
		"No video provided":                    "動画が指定されていません",
		"Merging audio and video: a: %s v: %s": "音声と動画を結合中: a: %s v: %s",
		"Available encoders:\n%s":              "利用可能なエンコーダ:\n%s",
		"Writing still images to %s":           "静止画を %s に書き出し中",
		"Memory usage unavailable: %s":         "メモリ使用量を取得できません: %s",

		// Errors
		"Failed to load video: %s":  "動画の読み込みに失敗しました: %s",
		"Failed to save video: %s":  "動画の保存に失敗しました: %s",
		"Failed to merge: %s":       "結合に失敗しました: %s",
		"Failed to export: %s":      "書き出しに失敗しました: %s",
		"Removed partial output %s": "不完全な出力 %s を削除しました",
	})
}
