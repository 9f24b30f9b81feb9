package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

func Display() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>Buzzer - Display</title>
    <link rel="stylesheet" href="/static/styles.css"/>
  </head>
  <body>
    <main class="shell display">
      <div id="board" class="board open">
        <span class="tag">Round <span id="roundID">-</span></span>
        <h1 id="headline">Buzzers armed</h1>
      </div>
    </main>
    <script>
      const board = document.getElementById("board");
      const roundID = document.getElementById("roundID");
      const headline = document.getElementById("headline");

      async function refresh() {
        try {
          const resp = await fetch("/api/status");
          if (!resp.ok) return;
          const data = await resp.json();
          roundID.textContent = data.round_id;
          if (data.status === "locked" && data.winner) {
            board.className = "board locked";
            headline.textContent = data.winner.participant + " buzzed first!";
          } else {
            board.className = "board open";
            headline.textContent = "Buzzers armed";
          }
        } catch (err) {
          // keep polling
        }
      }
      refresh();
      setInterval(refresh, 500);
    </script>
  </body>
</html>`)
		return err
	})
}
