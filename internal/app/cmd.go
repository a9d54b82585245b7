package app

// Command はバイナリの起動モードを表す。
// 同一イメージをサブコマンドだけ変えてAPI・ワーカー・マイグレーションの
// 各コンテナとして起動する。
type Command string

const (
	// CommandServe はAPIサーバーモード。
	CommandServe Command = "serve"
	// CommandWorker はバックグラウンドワーカーモード
	// （セッション掃除とリンク監査）。
	CommandWorker Command = "worker"
	// CommandMigrate はスキーママイグレーションを適用して終了するモード。
	CommandMigrate Command = "migrate"
	// CommandHealthcheck は起動中のAPIに対するヘルスチェック。
	// シェルを持たないdistrolessコンテナのHEALTHCHECK用。
	CommandHealthcheck Command = "healthcheck"
)

var knownCommands = map[string]Command{
	"serve":       CommandServe,
	"worker":      CommandWorker,
	"migrate":     CommandMigrate,
	"healthcheck": CommandHealthcheck,
}

// ParseCommand は先頭の引数をサブコマンドとして解釈する。
// 引数なし・未知のサブコマンドはいずれもCommandServeにフォールバックする。
func ParseCommand(args []string) Command {
	if len(args) == 0 {
		return CommandServe
	}
	if cmd, ok := knownCommands[args[0]]; ok {
		return cmd
	}
	return CommandServe
}
