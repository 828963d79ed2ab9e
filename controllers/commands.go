package controllers

import (
	"SmashSessions/services/redis"
	"SmashSessions/services/sessions"
	socketio_types "SmashSessions/services/socket_io/types"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

/*
 * The slash-command surface is a declarative table resolved at startup:
 * each command names its typed options, the dispatcher validates the
 * incoming arguments against the schema and only then invokes the handler.
 * The gateway mirrors this table when it registers the commands with the
 * chat platform.
 */

type OptionType string

const (
	OptionInteger OptionType = "integer"
	OptionString  OptionType = "string"
	// OptionHour accepts "18", "18.30" or a bare number; two fractional
	// digits are minutes, not a fraction of an hour.
	OptionHour OptionType = "hour"
)

type CommandOption struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Type        OptionType `json:"type"`
	Required    bool       `json:"required"`
}

type CommandDescriptor struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Options     []CommandOption `json:"options"`

	handler func(c *gin.Context, args commandArgs)
}

// commandArgs holds validated arguments, already coerced to their option
// type: int for integer options, string for string/hour options.
type commandArgs map[string]interface{}

func (a commandArgs) integer(name string) (int, bool) {
	v, ok := a[name].(int)
	return v, ok
}

func (a commandArgs) optionalInt(name string) *int {
	if v, ok := a[name].(int); ok {
		return &v
	}
	return nil
}

func (a commandArgs) str(name string) (string, bool) {
	v, ok := a[name].(string)
	return v, ok
}

func (a commandArgs) optionalStr(name string) *string {
	if v, ok := a[name].(string); ok {
		return &v
	}
	return nil
}

// coerceOption validates one raw JSON argument against its declared type.
func coerceOption(opt CommandOption, raw interface{}) (interface{}, error) {
	switch opt.Type {
	case OptionInteger:
		switch v := raw.(type) {
		case float64:
			if v != math.Trunc(v) {
				return nil, fmt.Errorf("option %q must be an integer", opt.Name)
			}
			return int(v), nil
		case string:
			n, err := strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("option %q must be an integer", opt.Name)
			}
			return n, nil
		}
		return nil, fmt.Errorf("option %q must be an integer", opt.Name)
	case OptionHour:
		switch v := raw.(type) {
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64), nil
		case string:
			return v, nil
		}
		return nil, fmt.Errorf("option %q must be an hour like 18.30", opt.Name)
	case OptionString:
		if v, ok := raw.(string); ok {
			return v, nil
		}
		return nil, fmt.Errorf("option %q must be a string", opt.Name)
	}
	return nil, fmt.Errorf("option %q has an unknown type", opt.Name)
}

func (d *CommandDescriptor) validate(raw map[string]interface{}) (commandArgs, error) {
	args := commandArgs{}
	known := map[string]CommandOption{}
	for _, opt := range d.Options {
		known[opt.Name] = opt
		if _, present := raw[opt.Name]; !present && opt.Required {
			return nil, fmt.Errorf("missing required option %q", opt.Name)
		}
	}
	for name, value := range raw {
		opt, ok := known[name]
		if !ok {
			return nil, fmt.Errorf("unknown option %q", name)
		}
		coerced, err := coerceOption(opt, value)
		if err != nil {
			return nil, err
		}
		args[name] = coerced
	}
	return args, nil
}

// CommandTable builds the command descriptors once, at startup.
func CommandTable(svc *sessions.Service, rc *redis.RedisClient, sio *socketio_types.SocketServer) map[string]*CommandDescriptor {
	nOption := CommandOption{Name: "n", Description: "Rank of the session in the upcoming list", Type: OptionInteger, Required: true}

	table := []*CommandDescriptor{
		{
			Name:        "create",
			Description: "Schedule a new session you will host",
			Options: []CommandOption{
				{Name: "day", Description: "Day of the month", Type: OptionInteger, Required: true},
				{Name: "start", Description: "Start hour, e.g. 18.30", Type: OptionHour, Required: true},
				{Name: "end", Description: "End hour, e.g. 2.0", Type: OptionHour, Required: true},
				{Name: "places", Description: "Number of places, omit for unlimited", Type: OptionInteger},
				{Name: "address", Description: "Where the session happens", Type: OptionString},
				{Name: "comment", Description: "Anything else to know", Type: OptionString},
			},
			handler: func(c *gin.Context, args commandArgs) {
				day, _ := args.integer("day")
				start, _ := args.str("start")
				end, _ := args.str("end")
				doCreate(c, svc, sio, createSessionRequest{
					Day:       day,
					StartHour: start,
					EndHour:   end,
					Places:    args.optionalInt("places"),
					Address:   args.optionalStr("address"),
					Comment:   args.optionalStr("comment"),
				})
			},
		},
		{
			Name:        "update",
			Description: "Update a session you host",
			Options: []CommandOption{
				nOption,
				{Name: "places", Description: "New number of places", Type: OptionInteger},
				{Name: "address", Description: "New address", Type: OptionString},
				{Name: "comment", Description: "New comment", Type: OptionString},
			},
			handler: func(c *gin.Context, args commandArgs) {
				s, ok := resolveCommandRank(c, svc, args)
				if !ok {
					return
				}
				doUpdate(c, svc, sio, s, updateSessionRequest{
					Places:  args.optionalInt("places"),
					Address: args.optionalStr("address"),
					Comment: args.optionalStr("comment"),
				})
			},
		},
		{
			Name:        "list",
			Description: "Show the upcoming sessions",
			handler: func(c *gin.Context, args commandArgs) {
				doList(c, svc)
			},
		},
		{
			Name:        "show",
			Description: "Show the nth upcoming session",
			Options:     []CommandOption{nOption},
			handler: func(c *gin.Context, args commandArgs) {
				s, ok := resolveCommandRank(c, svc, args)
				if !ok {
					return
				}
				doShow(c, svc, rc, s)
			},
		},
		{
			Name:        "next",
			Description: "Show the next session",
			handler: func(c *gin.Context, args commandArgs) {
				s, err := svc.NthSession(c.Request.Context(), 1)
				if err != nil {
					abortWithDomainError(c, err)
					return
				}
				doShow(c, svc, rc, s)
			},
		},
		{
			Name:        "join",
			Description: "Join the nth upcoming session",
			Options: []CommandOption{
				nOption,
				{Name: "consoles", Description: "Consoles you bring", Type: OptionInteger},
				{Name: "screens", Description: "Screens you bring", Type: OptionInteger},
				{Name: "adapters", Description: "GC adapters you bring", Type: OptionInteger},
			},
			handler: func(c *gin.Context, args commandArgs) {
				s, ok := resolveCommandRank(c, svc, args)
				if !ok {
					return
				}
				req := joinSessionRequest{}
				if v := args.optionalInt("consoles"); v != nil {
					req.Consoles = *v
				}
				if v := args.optionalInt("screens"); v != nil {
					req.Screens = *v
				}
				if v := args.optionalInt("adapters"); v != nil {
					req.Adapters = *v
				}
				doJoin(c, svc, sio, s, req)
			},
		},
		{
			Name:        "leave",
			Description: "Leave the nth upcoming session",
			Options:     []CommandOption{nOption},
			handler: func(c *gin.Context, args commandArgs) {
				s, ok := resolveCommandRank(c, svc, args)
				if !ok {
					return
				}
				doLeave(c, svc, sio, s)
			},
		},
		{
			Name:        "delete",
			Description: "Delete a session you host",
			Options:     []CommandOption{nOption},
			handler: func(c *gin.Context, args commandArgs) {
				s, ok := resolveCommandRank(c, svc, args)
				if !ok {
					return
				}
				doDelete(c, svc, sio, s)
			},
		},
	}

	byName := make(map[string]*CommandDescriptor, len(table))
	for _, cmd := range table {
		byName[cmd.Name] = cmd
	}
	return byName
}

func resolveCommandRank(c *gin.Context, svc *sessions.Service, args commandArgs) (*sessions.Session, bool) {
	n, ok := args.integer("n")
	if !ok {
		abortWithDomainError(c, sessions.ErrInvalidIndex)
		return nil, false
	}
	s, err := svc.NthSession(c.Request.Context(), n)
	if err != nil {
		abortWithDomainError(c, err)
		return nil, false
	}
	return s, true
}

type commandRequest struct {
	Args map[string]interface{} `json:"args"`
}

// @Summary Invoke a slash command
// @Description Validates the arguments against the command's option schema and executes it as the calling member.
// @Tags commands
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param name path string true "Command name" Enums(create, update, list, show, next, join, leave, delete)
// @Param request body controllers.commandRequest false "Command arguments"
// @Success 200 {object} object
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /auth/commands/{name} [post]
// @Security ApiKeyAuth
func DispatchCommand(table map[string]*CommandDescriptor) gin.HandlerFunc {
	return func(c *gin.Context) {
		cmd, ok := table[c.Param("name")]
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown command"})
			return
		}

		var req commandRequest
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
				return
			}
		}
		if req.Args == nil {
			req.Args = map[string]interface{}{}
		}

		args, err := cmd.validate(req.Args)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		cmd.handler(c, args)
	}
}

// @Summary List command descriptors
// @Description Returns the declarative command table the gateway registers with the chat platform.
// @Tags commands
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 200 {array} controllers.CommandDescriptor
// @Router /auth/commands [get]
// @Security ApiKeyAuth
func ListCommands(table map[string]*CommandDescriptor) gin.HandlerFunc {
	return func(c *gin.Context) {
		list := make([]*CommandDescriptor, 0, len(table))
		for _, name := range []string{"create", "update", "list", "show", "next", "join", "leave", "delete"} {
			if cmd, ok := table[name]; ok {
				list = append(list, cmd)
			}
		}
		c.JSON(http.StatusOK, list)
	}
}
