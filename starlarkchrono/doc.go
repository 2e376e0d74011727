/*Package starlarkchrono exposes chrono datetimes and timedeltas to Starlark
scripts. Values have reference semantics: binding a datetime to a second
name aliases it, and mutations through either name are visible to both.

  outline: chrono
    chrono defines datetime and timedelta values for starlark
    path: chrono
    functions:
      datetime_now() datetime
        current instant in UTC; datetime_utc is an alias
      datetime_local() datetime
        current instant with the local offset
      datetime_unix(int) datetime
      datetime_millis(int) datetime
      datetime_micros(int) datetime
      datetime_nanos(int) datetime
        instant from an epoch count; datetime_nanos never fails
      datetime_rfc2822(string) datetime
      datetime_rfc3339(string) datetime
      datetime_parse(text, format) datetime
        parse with a strftime pattern; a missing year defaults to 1970
      timedelta() timedelta
        zero length; also timedelta_zero
      timedelta_min() timedelta
      timedelta_max() timedelta
      timedelta_seconds(int, nanos=0) timedelta
      timedelta_minutes(int) timedelta
      timedelta_hours(int) timedelta
      timedelta_days(int) timedelta
      timedelta_weeks(int) timedelta
      timedelta_millis(int) timedelta
        also timedelta_milliseconds
      timedelta_micros(int) timedelta
        also timedelta_microseconds; never fails
      timedelta_nanos(int) timedelta
        also timedelta_nanoseconds; never fails

    types:
      datetime
        fields:
          year, month, month0, day, day0, ordinal, ordinal0 int
          hour, minute, second, nanosecond int
            settable; a value that does not fit the date leaves it unchanged
          time string
            "HH:MM:SS", settable
          timezone string
            "+HH:MM", settable to an offset, "local" or an IANA name
          offset int
          weekday int
            Monday=1 to Sunday=7
          timestamp, timestamp_millis, timestamp_micros, timestamp_nanos int
          timestamp_subsec_millis, timestamp_subsec_micros, timestamp_subsec_nanos int
        methods:
          set_<field>(v), set_time(s), set_timezone(s)
          with_<field>(v), with_time(s), with_timezone(s) datetime
            as set_, returning the receiver for chaining
          to_rfc3339() string
          to_rfc2822() string
          format(pattern, locale=...) string
          years_since(other=now) int
          add(timedelta), plus(timedelta), sub(timedelta), minus(timedelta)
            in place
          diff(datetime), compare(datetime), duration_since(datetime) timedelta
          copy() datetime
        operators:
          datetime + timedelta = datetime
          datetime - timedelta = datetime
          datetime - datetime = timedelta
          datetime == datetime = boolean
          datetime < datetime = boolean
      timedelta
        fields:
          is_zero bool
          seconds, minutes, hours, days, weeks int
          milliseconds, microseconds, nanoseconds int
          subsec_nanos int
        methods:
          get_<field>()
          abs(), add(timedelta), plus(timedelta), sub(timedelta), minus(timedelta)
            in place
          copy() timedelta
        operators:
          timedelta + timedelta = timedelta
          timedelta - timedelta = timedelta
          -timedelta = timedelta
          timedelta < timedelta = boolean
*/
package starlarkchrono // import "github.com/starlark-chrono/chrono/starlarkchrono"
