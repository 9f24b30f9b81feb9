package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

func Buzz() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>Buzzer</title>
    <link rel="stylesheet" href="/static/styles.css"/>
  </head>
  <body>
    <main class="shell">
      <header class="hero">
        <span class="tag">Buzzer</span>
        <h1>Be first. Buzz in.</h1>
        <p>Enter your name, wait for the question, and hit the buzzer.</p>
      </header>

      <section class="panel">
        <form id="buzzForm" class="buzz-form">
          <input name="name" placeholder="Your name" autocomplete="name" required/>
          <button type="submit" class="buzzer">BUZZ</button>
        </form>
        <div id="buzzResult" class="result"></div>
      </section>

      <section class="panel">
        <h2>Round</h2>
        <div id="roundStatus" class="status">Loading&hellip;</div>
      </section>
    </main>
    <script>
      const form = document.getElementById("buzzForm");
      const result = document.getElementById("buzzResult");
      const roundStatus = document.getElementById("roundStatus");

      form.addEventListener("submit", async (event) => {
        event.preventDefault();
        const name = new FormData(form).get("name");
        const resp = await fetch("/api/buzz", {
          method: "POST",
          headers: { "Content-Type": "application/json" },
          body: JSON.stringify({ name }),
        });
        const data = await resp.json();
        if (!resp.ok) {
          result.textContent = data.error || "Something went wrong.";
          return;
        }
        if (data.outcome === "winner") {
          result.textContent = "You buzzed in FIRST!";
        } else if (data.outcome === "too_late") {
          result.textContent = data.winner_name
            ? "Too late - " + data.winner_name + " already buzzed first."
            : "Too late.";
        } else {
          result.textContent = "Round just reset - try again.";
        }
      });

      async function refresh() {
        try {
          const resp = await fetch("/api/status");
          if (!resp.ok) return;
          const data = await resp.json();
          if (data.status === "locked" && data.winner) {
            roundStatus.textContent =
              "Round " + data.round_id + ": " + data.winner.participant + " buzzed first.";
          } else {
            roundStatus.textContent = "Round " + data.round_id + ": open, buzzers armed.";
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
