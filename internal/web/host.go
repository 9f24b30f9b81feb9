package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

func Host() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>Buzzer - Host</title>
    <link rel="stylesheet" href="/static/styles.css"/>
  </head>
  <body>
    <main class="shell">
      <header class="hero">
        <span class="tag">Host panel</span>
        <h1>Run the round</h1>
        <p>Start a new round when everyone is ready. Buzzes lock in below.</p>
      </header>

      <section class="panel">
        <form id="resetForm" class="reset-form">
          <input name="pin" type="password" placeholder="Admin PIN" autocomplete="off" required/>
          <button type="submit" class="primary">New round</button>
        </form>
        <div id="resetResult" class="result"></div>
      </section>

      <section class="panel">
        <h2>Buzz log</h2>
        <div id="roundStatus" class="status">Loading&hellip;</div>
        <ol id="buzzList" class="buzz-list"></ol>
      </section>
    </main>
    <script>
      const form = document.getElementById("resetForm");
      const result = document.getElementById("resetResult");
      const roundStatus = document.getElementById("roundStatus");
      const buzzList = document.getElementById("buzzList");

      form.addEventListener("submit", async (event) => {
        event.preventDefault();
        const pin = new FormData(form).get("pin");
        const resp = await fetch("/api/reset", {
          method: "POST",
          headers: { "Content-Type": "application/json" },
          body: JSON.stringify({ pin }),
        });
        const data = await resp.json();
        if (!resp.ok) {
          result.textContent = data.error || "Reset failed.";
          return;
        }
        result.textContent = "Round " + data.round_id + " is open.";
        refresh();
      });

      async function refresh() {
        try {
          const resp = await fetch("/api/status");
          if (!resp.ok) return;
          const data = await resp.json();
          if (data.status === "locked" && data.winner) {
            roundStatus.textContent =
              "Round " + data.round_id + ": locked, " + data.winner.participant + " won.";
          } else {
            roundStatus.textContent = "Round " + data.round_id + ": open.";
          }
          buzzList.replaceChildren();
          for (const buzz of data.buzzes) {
            const item = document.createElement("li");
            item.textContent = buzz.participant + " (" + buzz.buzzed_at + ")";
            buzzList.appendChild(item);
          }
        } catch (err) {
          // keep polling
        }
      }
      refresh();
      setInterval(refresh, 1000);
    </script>
  </body>
</html>`)
		return err
	})
}
