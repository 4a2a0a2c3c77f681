package domain

// DefaultQuestions is the built-in question set shipped with the widget.
func DefaultQuestions() QuestionSet {
	return QuestionSet{
		{
			Prompt:  "Which AI chatbot, launched by OpenAI, became widely popular in 2023?",
			Options: []string{"Blackbox", "Bard", "ChatGPT", "Claude"},
			Answer:  "ChatGPT",
		},
		{
			Prompt:  "What is the primary programming language used to train machine learning models in TensorFlow?",
			Options: []string{"Python", "Java", "C#", "JavaScript"},
			Answer:  "Python",
		},
		{
			Prompt:  "Which AI model architecture is commonly used in natural language processing tasks?",
			Options: []string{"CNN", "RNN", "Transformer", "GAN"},
			Answer:  "Transformer",
		},
		{
			Prompt: "What does the term 'generative AI' refer to?",
			Options: []string{
				"AI that can generate new content like text, images, or music",
				"AI that only classifies data",
				"AI that operates without training data",
				"AI used in hardware manufacturing",
			},
			Answer: "AI that can generate new content like text, images, or music",
		},
		{
			Prompt:  "Which of the following is a popular AI image generation model?",
			Options: []string{"YOLO", "Stable Diffusion", "BERT", "Keras"},
			Answer:  "Stable Diffusion",
		},
	}
}
