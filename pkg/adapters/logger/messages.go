package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// CLI level messages (info)
		"Grabbing thumbnail from %s at %.3fs...": "%s の %.3f 秒からサムネイルを取得中...",
		"Thumbnail saved to %s (%d bytes)":       "サムネイルを %s に保存しました (%d バイト)",
		"Video track: %s %dx%d, timescale %d":    "ビデオトラック: %s %dx%d, タイムスケール %d",

		// Grabber component (debug)
		"selected frame at skip count %d":    "スキップ数 %d のフレームを選択しました",
		"no decoder registered for codec %s": "コーデック %s のデコーダが登録されていません",
		"no still image encoder registered":  "静止画エンコーダが登録されていません",

		// Errors
		"frame selection did not find any frames":     "フレーム選択でフレームが見つかりませんでした",
		"decoding frame failed: %s":                   "フレームのデコードに失敗しました: %s",
		"flushing decoder failed: %s":                 "デコーダのフラッシュに失敗しました: %s",
		"decoder did not return a frame during flush": "フラッシュ中にデコーダがフレームを返しませんでした",
		"encoding still image failed: %s":             "静止画のエンコードに失敗しました: %s",
		"encoder did not return a packet":             "エンコーダがパケットを返しませんでした",

		"no frame data was handled, probably a truncated file": "フレームデータを処理できませんでした。ファイルが切り詰められている可能性があります",
	})
}
