package preview

// clientScript keeps #livetree-root in sync with the server and forwards
// events on elements that carry an id.
const clientScript = `<script>
(function() {
    'use strict';

    var root = document.getElementById('livetree-root');
    var reconnectDelay = 1000;
    var maxReconnectDelay = 30000;
    var ws = null;

    function connect() {
        var protocol = location.protocol === 'https:' ? 'wss:' : 'ws:';
        ws = new WebSocket(protocol + '//' + location.host + '/ws');

        ws.onopen = function() {
            reconnectDelay = 1000;
        };

        ws.onmessage = function(e) {
            var msg;
            try {
                msg = JSON.parse(e.data);
            } catch (err) {
                return;
            }
            switch (msg.type) {
                case 'html':
                    var focused = document.activeElement && document.activeElement.id;
                    root.innerHTML = msg.html;
                    if (focused) {
                        var el = document.getElementById(focused);
                        if (el) el.focus();
                    }
                    break;
                case 'error':
                    console.error('[livetree]', msg.code || '', msg.error);
                    break;
            }
        };

        ws.onclose = function() {
            setTimeout(function() {
                reconnectDelay = Math.min(reconnectDelay * 2, maxReconnectDelay);
                connect();
            }, reconnectDelay);
        };

        ws.onerror = function() {
            ws.close();
        };
    }

    function send(e) {
        var target = e.target.closest('[id]');
        if (!target || !root.contains(target) || target === root) return;
        if (!ws || ws.readyState !== WebSocket.OPEN) return;
        var msg = {type: 'event', event: e.type, target: target.id};
        if (e.type !== 'click' && 'value' in e.target) msg.value = e.target.value;
        if (e.type === 'change' && 'checked' in e.target) msg.checked = e.target.checked;
        if (e.key) msg.key = e.key;
        ws.send(JSON.stringify(msg));
    }

    ['click', 'input', 'change', 'keydown'].forEach(function(type) {
        root.addEventListener(type, send);
    });

    connect();
})();
</script>`
