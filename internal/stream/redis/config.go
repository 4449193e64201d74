package redis

// Config locates the discussion-request stream and names this consumer
// within its group. Messages carry a JSON DiscussionRequest under the
// "payload" field.
type Config struct {
	Addr     string
	Password string
	Stream   string
	Group    string
	Consumer string
}
