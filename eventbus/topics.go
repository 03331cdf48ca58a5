package eventbus

// TopicBlogEvents is used when kafka.topic is not configured.
var TopicBlogEvents = NewTopic("car-blog.blog.events")
