package user

type LoginInput struct {
	Name     string
	PhotoURL string
}

type SuspendInput struct {
	Reason   string
	Feedback string
}
