package pages

var Index = `
<!DOCTYPE html>
<html>
<head>
    <title>songbridge</title>
    <style>
        body {
            font-family: Arial, sans-serif;
            line-height: 1.6;
            max-width: 800px;
            margin: 0 auto;
            padding: 20px;
        }
        code {
            background: #f4f4f4;
            padding: 2px 6px;
        }
    </style>
</head>
<body>
    <h1>songbridge</h1>
    <p>Resolves video URLs into track metadata, audio and lyrics.</p>
    <ul>
        <li><code>GET /get-audio-info?url=...</code> — title, uploader, duration, thumbnail and a direct audio URL; add <code>lyrics=true</code> to attach lyrics</li>
        <li><code>GET /get-audio?url=...</code> — transcoded MP3 stream</li>
        <li><code>GET /playlist</code> — every song across the configured playlists</li>
        <li><code>GET /history?limit=N</code> — recently resolved tracks</li>
        <li><code>GET /healthz</code> — liveness</li>
    </ul>
</body>
</html>`
