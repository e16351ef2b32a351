// Package events defines the typed domain event contract for the callout
// pipeline.
//
// Event kinds are grouped by source namespaces:
//
//   - geo.*: device state changes sampled from the location stack.
//   - user.*: explicit user commands.
//   - route.*: waypoint lifecycle along an active route or tour.
//   - system.*: announcements and configuration flips.
//
// Events are immutable values. Generators consume them; nothing in this
// package reacts to an event by itself.
//
// geo events
//
//   - LocationUpdatedEvent (geo.location_updated): a new fix arrived.
//   - HeadingUpdatedEvent (geo.heading_updated): a heading source changed.
//
// user events
//
//   - MyLocationEvent (user.my_location): announce where the user is.
//   - AroundMeEvent (user.around_me): announce nearby points of interest.
//   - RepeatCalloutsEvent (user.repeat_callouts): replay the last episode.
//
// route events
//
//   - WaypointArrivedEvent (route.waypoint_arrived)
//   - WaypointDepartedEvent (route.waypoint_departed)
//   - WaypointDistanceEvent (route.waypoint_distance)
//
// system events
//
//   - AnnouncementEvent (system.announcement): free-form spoken notice.
//   - CalloutsToggledEvent (system.callouts_toggled): master switch flip.
package events
