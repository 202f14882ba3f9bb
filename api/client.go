package api

import (
	"strings"
	"time"

	"github.com/battlesnakeio/arena/admin"
	"github.com/battlesnakeio/arena/config"
	"github.com/battlesnakeio/arena/notify"
	"github.com/battlesnakeio/arena/rules"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Message types only exchanged with the transport.
const (
	TypeWelcome = "welcome"
	TypeError   = "error"
)

// Admin settings a client can change.
const (
	SettingBots        = "bots"
	SettingFood        = "food"
	SettingSpeed       = "speed"
	SettingStartLength = "startLength"
)

var errUnknownMessage = errors.New("unknown message type")

// ClientMessage is a command sent by a client.
type ClientMessage struct {
	Type      string `json:"type" msgpack:"type"`
	Direction string `json:"direction,omitempty" msgpack:"direction,omitempty"`
	Name      string `json:"name,omitempty" msgpack:"name,omitempty"`
	Color     string `json:"color,omitempty" msgpack:"color,omitempty"`
	Setting   string `json:"setting,omitempty" msgpack:"setting,omitempty"`
	Change    string `json:"change,omitempty" msgpack:"change,omitempty"`
}

// Welcome tells a client the id it plays under.
type Welcome struct {
	ID string `json:"id" msgpack:"id"`
}

type client struct {
	id      string
	server  *Server
	conn    *websocket.Conn
	codec   Codec
	send    <-chan notify.Message
	limiter *rate.Limiter
}

func (c *client) log() *log.Entry {
	return log.WithFields(log.Fields{"ClientID": c.id, "Encoding": c.codec.Name()})
}

// readPump reads commands until the connection fails, then disconnects the
// player.
func (c *client) readPump() {
	defer func() {
		c.server.hub.Unregister(c.id)
		c.server.worker.Disconnect(c.id)
		c.conn.Close()
		c.log().Info("client disconnected")
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		messageType, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log().WithError(err).Warn("websocket read failed")
			}
			return
		}
		if !c.limiter.Allow() {
			c.log().Debug("client over input rate, message dropped")
			continue
		}

		var msg ClientMessage
		if err := decoderFor(messageType).Unmarshal(data, &msg); err != nil {
			c.reject(errors.Wrap(err, "malformed message"))
			continue
		}
		if err := c.handle(msg); err != nil {
			c.reject(err)
		}
	}
}

func (c *client) reject(err error) {
	c.log().WithError(err).Debug("client message rejected")
	c.server.hub.SendTo(c.id, notify.Message{
		Type:    TypeError,
		Payload: notify.Notification{Text: err.Error()},
	})
}

// handle turns a client message into a worker command.
func (c *client) handle(msg ClientMessage) error {
	w := c.server.worker
	switch msg.Type {
	case "direction":
		d, err := rules.ParseDirection(msg.Direction)
		if err != nil {
			return err
		}
		w.ChangeDirection(c.id, d)
	case "join":
		w.Join(c.id)
	case "spectate":
		w.Spectate(c.id)
	case "name":
		name := CleanString(msg.Name)
		if err := ValidPlayerName(name); err != nil {
			return err
		}
		w.ChangeName(c.id, name)
	case "color":
		color := strings.TrimSpace(msg.Color)
		if err := ValidColor(color); err != nil {
			return err
		}
		w.ChangeColor(c.id, color)
	case "admin":
		return c.handleAdmin(msg)
	default:
		return errors.Wrapf(errUnknownMessage, "%q", msg.Type)
	}
	return nil
}

func (c *client) handleAdmin(msg ClientMessage) error {
	change, err := admin.ParseChange(msg.Change)
	if err != nil {
		return err
	}
	var apply func(*admin.Service)
	switch msg.Setting {
	case SettingBots:
		apply = func(s *admin.Service) { s.ChangeBots(c.id, change) }
	case SettingFood:
		apply = func(s *admin.Service) { s.ChangeFood(c.id, change) }
	case SettingSpeed:
		apply = func(s *admin.Service) { s.ChangeSpeed(c.id, change) }
	case SettingStartLength:
		apply = func(s *admin.Service) { s.ChangeStartLength(c.id, change) }
	default:
		return errors.Errorf("unknown admin setting %q", msg.Setting)
	}
	adm := c.server.admin
	c.server.worker.Enqueue(func(*rules.Game) { apply(adm) })
	return nil
}

// writePump writes hub messages and pings until the hub closes the channel.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			data, err := c.codec.Marshal(msg)
			if err != nil {
				c.log().WithError(err).WithField("Type", msg.Type).Error("unable to encode message")
				continue
			}
			if err := c.conn.WriteMessage(c.codec.MessageType(), data); err != nil {
				c.log().WithError(err).Debug("websocket write failed")
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func newLimiter() *rate.Limiter {
	return rate.NewLimiter(config.InputRate, config.InputBurst)
}
