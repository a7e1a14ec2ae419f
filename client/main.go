// Command client is a minimal interactive websocket client for manual
// play-testing against a running server.
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/palabra/impostor/network"
)

func send(c *websocket.Conn, msgID uint16, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return c.WriteMessage(websocket.BinaryMessage, network.EncodeFrame(msgID, data))
}

func main() {
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	u := url.URL{Scheme: "ws", Host: "localhost:8080", Path: "/ws"}
	log.Printf("Connecting to %s", u.String())

	c, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("Dial failed: %v", err)
	}
	defer c.Close()

	done := make(chan struct{})

	// Read loop: print every push from the server.
	go func() {
		defer close(done)
		for {
			_, message, err := c.ReadMessage()
			if err != nil {
				log.Printf("Read error: %v", err)
				return
			}
			packet, err := network.DecodeFrame(message)
			if err != nil {
				continue
			}
			fmt.Printf("<- [%d] %s\n", packet.MsgID, packet.Data)
		}
	}()

	fmt.Println("Commands: create <name> | join <code> <name> | start | say <text> | vote <id|skip> | revealed | quit")

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		select {
		case <-interrupt:
			return
		case <-done:
			return
		default:
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		var err error
		switch fields[0] {
		case "create":
			if len(fields) < 2 {
				fmt.Println("usage: create <name>")
				continue
			}
			err = send(c, network.MsgTypeCreateRoom, map[string]string{"name": fields[1]})
		case "join":
			if len(fields) < 3 {
				fmt.Println("usage: join <code> <name>")
				continue
			}
			err = send(c, network.MsgTypeJoinRoom, map[string]string{"roomCode": fields[1], "name": fields[2]})
		case "start":
			err = send(c, network.MsgTypeStartGame, map[string]string{})
		case "say":
			err = send(c, network.MsgTypeChatSend, map[string]string{"text": strings.Join(fields[1:], " ")})
		case "vote":
			if len(fields) < 2 {
				fmt.Println("usage: vote <id|skip>")
				continue
			}
			err = send(c, network.MsgTypeVoteSubmit, map[string]string{"targetId": fields[1]})
		case "revealed":
			err = send(c, network.MsgTypeWordRevealed, map[string]string{})
		case "quit":
			return
		default:
			fmt.Println("unknown command")
			continue
		}
		if err != nil {
			log.Printf("Send failed: %v", err)
			return
		}
	}
}
