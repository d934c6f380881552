package http

const landingHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Afya Toto</title>
</head>
<body>
    <div style="
        text-align:center;
        font-family:sans-serif;
        min-height: 100vh;
        display: flex;
        flex-direction: column;
        justify-content: center;
        align-items: center;
        color: #004080;
    ">
        <h1>👶 Afya Toto</h1>
        <p>Protecting Children’s Health Through Data Insights</p>
        <a href='/dashboard/'>Go to Dashboard</a>
    </div>
</body>
</html>
`

const dashboardHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Afya-Toto Dashboard</title>
    <script src="https://cdn.jsdelivr.net/npm/chart.js"></script>
    <style>
        body {
            font-family: sans-serif;
            background: #f4f7fb;
            color: #1e293b;
            margin: 0;
            padding: 30px;
            display: flex;
            flex-direction: column;
            align-items: center;
        }
        .container {
            max-width: 900px;
            width: 100%;
            background: #ffffff;
            padding: 24px;
            border-radius: 12px;
            box-shadow: 0 8px 24px rgba(0, 64, 128, 0.12);
        }
        h1 { text-align: center; color: #004080; }
        .selectors { display: flex; gap: 16px; justify-content: center; flex-wrap: wrap; }
        .selector { display: flex; flex-direction: column; min-width: 220px; }
        .selector label { margin-bottom: 4px; font-weight: 600; }
        select { min-height: 140px; border: 1px solid #cbd5e1; border-radius: 6px; padding: 4px; }
        .actions { text-align: center; margin: 20px 0; }
        button {
            background: #16a34a; color: white; border: none;
            padding: 10px 28px; border-radius: 6px; font-size: 1rem; cursor: pointer;
        }
        button:hover { background: #15803d; }
        #output { text-align: center; min-height: 40px; font-size: 1.1rem; }
        #chart-wrap { max-width: 420px; margin: 0 auto; display: none; }
        #feed { margin-top: 24px; font-size: 0.85rem; color: #475569; }
        #feed li { list-style: none; }
    </style>
</head>
<body>
    <div class="container">
        <h1>Afya-Toto Dashboard</h1>
        <div class="selectors" id="selectors"></div>
        <div class="actions">
            <button id="predict-btn">Predict</button>
        </div>
        <div id="output">ℹ️ Select features first.</div>
        <div id="chart-wrap"><canvas id="risk-chart"></canvas></div>
        <ul id="feed"></ul>
    </div>
    <script>
        const MODE = "__MODE__";
        let riskChart = null;

        async function loadFeatures() {
            const res = await fetch('/api/features');
            const data = await res.json();
            const host = document.getElementById('selectors');
            if (data.error) {
                host.textContent = data.error;
                return;
            }
            for (const target of Object.keys(data)) {
                const wrap = document.createElement('div');
                wrap.className = 'selector';
                const label = document.createElement('label');
                label.textContent = 'Select features for ' + target;
                const select = document.createElement('select');
                select.multiple = true;
                select.dataset.target = target;
                for (const feature of data[target]) {
                    const opt = document.createElement('option');
                    opt.value = feature;
                    opt.textContent = feature;
                    select.appendChild(opt);
                }
                wrap.appendChild(label);
                wrap.appendChild(select);
                host.appendChild(wrap);
            }
        }

        function collectSelections() {
            const selections = {};
            for (const select of document.querySelectorAll('#selectors select')) {
                selections[select.dataset.target] =
                    Array.from(select.selectedOptions).map(o => o.value);
            }
            return selections;
        }

        function renderChart(payload) {
            const output = document.getElementById('output');
            if (payload.message) {
                output.textContent = payload.message;
                return;
            }
            output.textContent = payload.icon + ' Predicted ' + payload.target +
                ' risk: ' + payload.prediction.toFixed(3);
            document.getElementById('chart-wrap').style.display = 'block';
            const data = {
                labels: [payload.target],
                datasets: [{
                    label: 'Predicted risk',
                    data: [payload.prediction],
                    backgroundColor: payload.color
                }]
            };
            if (riskChart) {
                riskChart.data = data;
                riskChart.update();
                return;
            }
            riskChart = new Chart(document.getElementById('risk-chart'), {
                type: 'bar',
                data: data,
                options: { scales: { y: { min: 0, max: 1 } } }
            });
        }

        async function predict() {
            const res = await fetch('/api/dashboard/predict', {
                method: 'POST',
                headers: { 'Content-Type': 'application/json' },
                body: JSON.stringify({ selections: collectSelections() })
            });
            const payload = await res.json();
            if (payload.mode === 'echo') {
                document.getElementById('output').textContent = payload.message;
            } else {
                renderChart(payload);
            }
        }

        function subscribeFeed() {
            const proto = location.protocol === 'https:' ? 'wss' : 'ws';
            const ws = new WebSocket(proto + '://' + location.host + '/api/ws/dashboard');
            ws.onmessage = (ev) => {
                const event = JSON.parse(ev.data);
                const li = document.createElement('li');
                li.textContent = event.timestamp + ' | ' + event.target +
                    ' risk ' + event.risk.toFixed(3) + ' (' + event.mode + ')';
                const feed = document.getElementById('feed');
                feed.prepend(li);
                while (feed.children.length > 10) feed.removeChild(feed.lastChild);
            };
        }

        document.getElementById('predict-btn').addEventListener('click', predict);
        loadFeatures();
        if (MODE === 'chart') subscribeFeed();
    </script>
</body>
</html>
`
