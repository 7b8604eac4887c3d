package report

import (
	"fmt"
	"strings"

	"clanwatch/internal/config"
)

func (r *Renderer) Version(v config.VersionInfo) string {
	note := ""
	if v.Msg != "" {
		note = "\n📝 " + v.Msg
	}
	return fmt.Sprintf(
		"🔧 <b>Bot-Version</b>\n"+
			"• Commit: <code>%s</code> (%s)\n"+
			"• Autor: %s\n"+
			"• Build: %s%s",
		shortSHA(v.SHA), v.Ref, v.Author, v.Time, note)
}

func (r *Renderer) Startup(v config.VersionInfo) string {
	note := ""
	if v.Msg != "" {
		note = "\n📝 " + v.Msg
	}
	return fmt.Sprintf(
		"🚀 <b>Clanwatch-Bot wurde gestartet!</b>\n"+
			"• Commit: <code>%s</code> (%s)\n"+
			"• Autor: %s\n"+
			"• Build: %s%s",
		shortSHA(v.SHA), v.Ref, v.Author, v.Time, note)
}

func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}

// CommandDescription feeds both the /hilfe text and the Telegram command
// registration.
type CommandDescription struct {
	Command     string
	Description string
}

var GroupCommands = []CommandDescription{
	{"status", "🟢 Zeigt den Bot-Status an"},
	{"start", "🚀 Startet den Bot"},
	{"hilfe", "❓ Zeigt diese Hilfe an"},
	{"help", "❓ Shows this help"},
	{"commands", "📋 Liste aller verfügbaren Befehle"},
	{"version", "📋 Bot-Version und Informationen"},
	{"claninfo", "🏛️ Zeigt Clan-Informationen an"},
	{"aktivitaet", "⚡ Zeigt Aktivität der Clan-Mitglieder"},
	{"online", "🟢 Zeigt aktuell online Mitglieder"},
	{"offeneangriffe", "⚔️ Zeigt offene Deck-Angriffe im River Race"},
	{"krieginfo", "🏰 Krieg-Informationen (auto/heute/gesamt)"},
	{"krieginfoheute", "📅 Heutige Krieg-Informationen"},
	{"krieginfogesamt", "📊 Gesamt Krieg-Informationen"},
	{"spenden", "💰 Spenden-Rangliste (optional: Limit oder 'alle')"},
	{"krieghistorie", "📜 Krieg-Historie (optional: Spielername)"},
	{"inaktiv", "💤 Inaktivste Spieler (optional: Kriterium)"},
	{"details", "👤 Spieler-Details (Name oder Tag)"},
	{"spion", "🕵️ Spionage des aktivsten Gegnerclans mit Historie"},
}

var PrivateCommands = []CommandDescription{
	{"start", "🚀 Startet den Bot"},
	{"hilfe", "❓ Zeigt diese Hilfe an"},
	{"help", "❓ Shows this help"},
	{"version", "📋 Bot-Version und Informationen"},
}

func (r *Renderer) Help() string {
	lines := []string{"<b>📋 Verfügbare Befehle:</b>\n"}
	for _, c := range GroupCommands {
		lines = append(lines, fmt.Sprintf("/%s - %s", c.Command, c.Description))
	}
	lines = append(lines,
		"",
		"<b>💡 Tipps:</b>",
		"• Befehle mit Parametern: <code>/befehl [parameter]</code>",
		"• Parameter sind optional, wenn nicht anders angegeben",
	)
	return truncate(strings.Join(lines, "\n"))
}
