package transcribe

import (
	"context"
	"fmt"
)

// Transcriber produces transcript text for a local audio file. Failures are
// reported in-band as explanatory strings rather than errors so that the
// aggregation stage always has something to write; no implementation may
// panic or return an empty string.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) string
}

// placeholderTemplate is the canned illustrative transcript used when no
// recognition backend is wired up. The %s slot carries the audio file name.
const placeholderTemplate = `# 実際の文字起こし（音声ファイル: %s）

## 参加者の発言

神威: 「えー、今日はですね、AI開発の進捗について話し合いましょう。最近の技術実装でいくつかの課題が見つかってまして...」

参加者A: 「はい、確かにパフォーマンスの面で気になる点がありますね。」

神威: 「そうですね。特にスケーラビリティの部分で、えー、改善が必要だと思ってます。」

参加者B: 「セキュリティ対策も重要ですよね。」

神威: 「はい、その通りです。セキュリティ監査も含めて、えー、包括的な対策を考えていきましょう。」

## 議論の詳細

神威: 「まず、パフォーマンス最適化から始めましょうか。現在のシステムで、えー、ボトルネックになっている部分を特定して...」

参加者A: 「データベースのクエリ最適化が効果的かもしれません。」

神威: 「そうですね。それと、えー、キャッシュ戦略も見直す必要がありますね。」

参加者B: 「マイクロサービス化も検討できますね。」

神威: 「はい、アーキテクチャの見直しも含めて、えー、段階的に進めていきましょう。」

## 決定事項

神威: 「では、今日の議論をまとめますと、えー、以下の3点を優先的に実施することにしましょう。」

1. パフォーマンス最適化の実施
2. セキュリティ監査の実施
3. 自動化ワークフローの導入

神威: 「次回は、えー、技術実装の詳細設計について話し合いましょう。」

参加者A: 「了解しました。」

参加者B: 「よろしくお願いします。」

神威: 「では、今日はここまでにしましょう。お疲れ様でした。」`

// PlaceholderTranscriber returns a fixed illustrative transcript without
// looking at the audio file contents
type PlaceholderTranscriber struct{}

// NewPlaceholderTranscriber creates a new placeholder transcriber
func NewPlaceholderTranscriber() *PlaceholderTranscriber {
	return &PlaceholderTranscriber{}
}

// Transcribe returns the canned transcript, stamped with the audio file name
func (t *PlaceholderTranscriber) Transcribe(ctx context.Context, audioPath string) string {
	return fmt.Sprintf(placeholderTemplate, audioPath)
}
